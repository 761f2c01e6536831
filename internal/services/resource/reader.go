package resource

import (
	"context"
	"net/http"

	"eventconsole/internal/api"
)

// Reader implements the list and detail reads shared by every backend collection.
// T is the list item type and D the detail type.
type Reader[T any, D any] struct {
	client *api.Client
	res    api.Resource
	noun   string
}

// NewReader creates a reader for res; noun is used in not-found messages.
func NewReader[T any, D any](client *api.Client, res api.Resource, noun string) Reader[T, D] {
	return Reader[T, D]{client: client, res: res, noun: noun}
}

// GetAll fetches one page. Concurrent identical list reads share one round trip.
func (r Reader[T, D]) GetAll(ctx context.Context, params *api.ListParams) (*api.Page[T], error) {
	endpoint := api.WithQuery(r.res.List(), params)
	page, err := api.Call[api.Page[T]](ctx, r.client, endpoint, api.Request{Key: http.MethodGet + " " + endpoint})
	if err != nil {
		return nil, err
	}
	if page == nil {
		size := 0
		if params != nil {
			size = params.PageSize
		}
		empty := api.NewPage[T](nil, 1, size, 0)
		return &empty, nil
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}

// GetByID always reads fresh state. An empty answer is reported as a 404.
func (r Reader[T, D]) GetByID(ctx context.Context, id string) (*D, error) {
	return Fresh[D](ctx, r.client, r.res.ByID(id), r.noun)
}

// Fresh reads a single document with no-store and turns an empty answer into a 404.
func Fresh[D any](ctx context.Context, client *api.Client, endpoint, noun string) (*D, error) {
	out, err := api.Call[D](ctx, client, endpoint, api.Request{Cache: api.CacheNoStore})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, &api.Error{Status: http.StatusNotFound, Message: noun + " not found", Code: "not_found"}
	}
	return out, nil
}
