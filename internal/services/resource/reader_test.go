package resource_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventconsole/internal/api"
	"eventconsole/internal/services/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID string `json:"id"`
}

type detail struct {
	item
	Notes string `json:"notes"`
}

func TestGetAllSendsOnlyPresentParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.NewPage([]item{{ID: "c1"}}, 2, 10, 11))
	}))
	defer srv.Close()

	r := resource.NewReader[item, detail](api.NewClient(srv.URL), api.Customers, "customer")
	page, err := r.GetAll(context.Background(), &api.ListParams{Page: 2, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, "page=2&pageSize=10", gotQuery)
	assert.Equal(t, []item{{ID: "c1"}}, page.Items)
	assert.Equal(t, 2, page.CurrentPage)
	assert.False(t, page.HasNext)
	require.NoError(t, page.Validate())
}

func TestGetAllWithoutParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	r := resource.NewReader[item, detail](api.NewClient(srv.URL), api.Customers, "customer")
	page, err := r.GetAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.False(t, page.HasNext)
}

func TestGetByIDBypassesCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/c1", r.URL.Path)
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","notes":"vip"}`))
	}))
	defer srv.Close()

	r := resource.NewReader[item, detail](api.NewClient(srv.URL), api.Customers, "customer")
	d, err := r.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", d.ID)
	assert.Equal(t, "vip", d.Notes)
}

func TestGetByIDEmptyIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	r := resource.NewReader[item, detail](api.NewClient(srv.URL), api.Customers, "customer")
	_, err := r.GetByID(context.Background(), "c1")

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, "customer not found", apiErr.Message)
}

func TestErrorsPropagateUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"not allowed","code":"forbidden"}`))
	}))
	defer srv.Close()

	r := resource.NewReader[item, detail](api.NewClient(srv.URL), api.Customers, "customer")

	_, err := r.GetAll(context.Background(), nil)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "forbidden", apiErr.Code)

	_, err = r.GetByID(context.Background(), "c1")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "not allowed", apiErr.Message)
}
