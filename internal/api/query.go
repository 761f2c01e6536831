package api

import (
	"fmt"
	"net/url"
	"strconv"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListParams are the optional paging and sorting parameters accepted by every list endpoint.
// Zero values are treated as absent.
type ListParams struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder SortOrder
}

// Values returns only the parameters that are set.
func (p *ListParams) Values() url.Values {
	q := url.Values{}
	if p == nil {
		return q
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		q.Set("sortOrder", string(p.SortOrder))
	}
	return q
}

// WithQuery appends the encoded parameters to endpoint. Keys are emitted in sorted order,
// so the result is stable and safe to use as an in-flight key.
func WithQuery(endpoint string, p *ListParams) string {
	qs := p.Values().Encode()
	if qs == "" {
		return endpoint
	}
	return endpoint + "?" + qs
}

// ParseListParams reads list parameters from a query string, ignoring malformed values.
func ParseListParams(q url.Values) *ListParams {
	p := &ListParams{
		SortBy:    q.Get("sortBy"),
		SortOrder: SortOrder(q.Get("sortOrder")),
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(q.Get("pageSize")); err == nil && n > 0 {
		p.PageSize = n
	}
	if p.SortOrder != SortAsc && p.SortOrder != SortDesc {
		p.SortOrder = ""
	}
	return p
}

// Page is the paginated envelope returned by list endpoints.
type Page[T any] struct {
	Items       []T  `json:"items"`
	CurrentPage int  `json:"currentPage"`
	PageSize    int  `json:"pageSize"`
	TotalCount  int  `json:"totalCount"`
	TotalPages  int  `json:"totalPages"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// NewPage builds a consistent envelope for one page of a collection of total items.
func NewPage[T any](items []T, currentPage, pageSize, total int) Page[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalCount:  total,
		TotalPages:  totalPages,
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
}

// Validate checks the envelope invariants: no more items than the page size,
// and HasNext exactly when the current page is before the last one.
func (p *Page[T]) Validate() error {
	if p.PageSize > 0 && len(p.Items) > p.PageSize {
		return fmt.Errorf("page holds %d items, more than page size %d", len(p.Items), p.PageSize)
	}
	if p.HasNext != (p.CurrentPage < p.TotalPages) {
		return fmt.Errorf("hasNext=%t inconsistent with page %d of %d", p.HasNext, p.CurrentPage, p.TotalPages)
	}
	return nil
}
