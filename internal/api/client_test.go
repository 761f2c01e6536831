package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"eventconsole/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newServer(t *testing.T, h http.HandlerFunc) (*httptest.Server, *api.Client) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, api.NewClient(srv.URL)
}

func TestCallDecodesJSON(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/widgets/1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"id":"1","name":"lamp"}`))
	})

	got, err := api.Call[widget](context.Background(), c, "/widgets/1", api.Request{})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, widget{ID: "1", Name: "lamp"}, *got)
}

func TestCallSendsJSONBody(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "key-1", r.Header.Get("Idempotency-Key"))
		assert.Equal(t, "yes", r.Header.Get("X-Extra"))

		var in widget
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "lamp", in.Name)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"9","name":"lamp"}`))
	})

	got, err := api.Call[widget](context.Background(), c, "/widgets", api.Request{
		Method:         http.MethodPost,
		Data:           widget{Name: "lamp"},
		IdempotencyKey: "key-1",
		Headers:        map[string]string{"X-Extra": "yes"},
	})
	require.NoError(t, err)
	assert.Equal(t, "9", got.ID)
}

func TestCallWithoutDataSendsNoContentType(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Cache-Control"))
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := api.Call[widget](context.Background(), c, "/widgets", api.Request{})
	require.NoError(t, err)
}

func TestCallNoStoreDirective(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := api.Call[widget](context.Background(), c, "/widgets/1", api.Request{Cache: api.CacheNoStore})
	require.NoError(t, err)
}

func TestCallEmptySuccessResolvesNil(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"no content": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
		"empty body": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
		},
		"non json": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("ok"))
		},
		"malformed json": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":`))
		},
	}

	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			_, c := newServer(t, h)
			got, err := api.Call[widget](context.Background(), c, "/widgets", api.Request{})
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestCallErrorMessagePriority(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
		wantCode string
	}{
		{"message field", http.StatusConflict, `{"message":"Email already exists","title":"Conflict"}`, "Email already exists", ""},
		{"title field", http.StatusBadRequest, `{"title":"Bad Request"}`, "Bad Request", ""},
		{"raw text", http.StatusInternalServerError, `Server Error`, "Server Error", ""},
		{"status text", http.StatusBadGateway, ``, "Bad Gateway", ""},
		{"string code", http.StatusUnprocessableEntity, `{"message":"invalid","code":"validation_failed"}`, "invalid", "validation_failed"},
		{"numeric code", http.StatusForbidden, `{"message":"nope","code":4031}`, "nope", "4031"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			got, err := api.Call[widget](context.Background(), c, "/widgets", api.Request{})
			assert.Nil(t, got)

			var apiErr *api.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.wantMsg, apiErr.Message)
			assert.Equal(t, tc.wantCode, apiErr.Code)
			assert.False(t, apiErr.IsTransport())
		})
	}
}

func TestCallNetworkFailureHasStatusZero(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := api.NewClient(base)
	_, err := api.Call[widget](context.Background(), c, "/widgets", api.Request{})

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.True(t, apiErr.IsTransport())
	assert.NotEmpty(t, apiErr.Message)
	assert.NotNil(t, errors.Unwrap(apiErr))
}

func TestCallCancelledContextIsTransportError(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := api.Call[widget](ctx, c, "/widgets", api.Request{})

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCallKeyJoinsInFlightRequests(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1"}`))
	})

	const callers = 5
	var wg sync.WaitGroup
	results := make([]*widget, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = api.Call[widget](context.Background(), c, "/widgets/1", api.Request{Key: "GET /widgets/1"})
		}(i)
	}

	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "1", results[i].ID)
	}

	// The key is released once the call completes.
	_, err := api.Call[widget](context.Background(), c, "/widgets/1", api.Request{Key: "GET /widgets/1"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestExecDiscardsBody(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"deleted":true}`))
	})

	require.NoError(t, c.Exec(context.Background(), "/widgets/1", api.Request{Method: http.MethodDelete}))
}

func TestClientOptions(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "console-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "tenant-a", r.Header.Get("X-Tenant"))
		w.WriteHeader(http.StatusNoContent)
	})
	c = api.NewClient(c.BaseURL()+"/",
		api.WithUserAgent("console-test"),
		api.WithHeader("X-Tenant", "tenant-a"),
		api.WithTimeout(2*time.Second),
	)

	assert.Equal(t, 2*time.Second, c.HTTPClient().Timeout)
	require.NoError(t, c.Exec(context.Background(), "widgets", api.Request{}))
}

func TestCallJoinedCallerSurvivesLeaderCancel(t *testing.T) {
	var hits atomic.Int32
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1"}`))
	})
	req := api.Request{Key: "GET /widgets"}

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := api.Call[widget](leaderCtx, c, "/widgets", req)
		leaderErr <- err
	}()

	time.Sleep(20 * time.Millisecond)
	followerDone := make(chan struct{})
	var (
		got       *widget
		followErr error
	)
	go func() {
		defer close(followerDone)
		got, followErr = api.Call[widget](context.Background(), c, "/widgets", req)
	}()

	time.Sleep(30 * time.Millisecond)
	cancelLeader()

	err := <-leaderErr
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorIs(t, err, context.Canceled)

	<-followerDone
	require.NoError(t, followErr)
	require.NotNil(t, got)
	assert.Equal(t, "1", got.ID)
	assert.Equal(t, int32(1), hits.Load())
}

func TestForgetInFlightStartsFreshRoundTrip(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			<-release
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + r.URL.Query().Get("page") + `"}`))
	})
	req := api.Request{Key: "GET /widgets?page=2"}

	first := make(chan error, 1)
	go func() {
		_, err := api.Call[widget](context.Background(), c, "/widgets?page=2", req)
		first <- err
	}()
	time.Sleep(50 * time.Millisecond)

	c.ForgetInFlight("/widgets/")
	got, err := api.Call[widget](context.Background(), c, "/widgets?page=2", req)
	require.NoError(t, err)
	assert.Equal(t, "2", got.ID)
	assert.Equal(t, int32(2), hits.Load())

	close(release)
	require.NoError(t, <-first)
}

func TestCallTruncatedBodyIsTransportError(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", "100")
		_, _ = w.Write([]byte(`{"id":`))
	})

	_, err := api.Call[widget](context.Background(), c, "/widgets", api.Request{})

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsTransport())
	assert.Equal(t, 0, apiErr.Status)
}
