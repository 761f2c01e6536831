// Package actions holds the console's write operations. Every action reports its outcome as a
// Result instead of an error so that forms can render the failure message directly.
package actions

import (
	"context"
	"strings"

	"eventconsole/internal/api"
	"eventconsole/internal/pagecache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Result is the outcome of a mutation.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// None is the payload of actions that return nothing.
type None struct{}

const fallbackMessage = "Something went wrong. Please try again."

func failure[T any](err error) Result[T] {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = fallbackMessage
	}
	return Result[T]{Success: false, Error: msg}
}

// Actions performs mutations against the backend and invalidates affected views.
type Actions struct {
	client *api.Client
	views  pagecache.Invalidator
	newKey func() string
}

// New creates the action set. views may be nil when nothing is cached.
func New(client *api.Client, views pagecache.Invalidator) *Actions {
	return &Actions{client: client, views: views, newKey: uuid.NewString}
}

// mutate sends one write with a fresh idempotency key. On success, later reads of the given
// paths stop joining round trips that started before the write, and the cached views are
// invalidated. Invalidation never changes the result.
//
// Only list views are cached today. Detail, customization and landing paths are passed as
// well so that the write names every view it makes stale; for those the call is a no-op.
func mutate[T any](ctx context.Context, a *Actions, op, endpoint string, req api.Request, stale ...string) Result[T] {
	req.IdempotencyKey = a.newKey()

	out, err := api.Call[T](ctx, a.client, endpoint, req)
	if err != nil {
		log.Warn().
			Str("action", op).
			Str("endpoint", endpoint).
			Err(err).
			Msg("mutation failed")
		return failure[T](err)
	}

	a.client.ForgetInFlight(stale...)
	a.invalidate(ctx, op, stale)
	return Result[T]{Success: true, Data: out}
}

func (a *Actions) invalidate(ctx context.Context, op string, paths []string) {
	if a.views == nil || len(paths) == 0 {
		return
	}
	if err := a.views.Invalidate(context.WithoutCancel(ctx), paths...); err != nil {
		log.Warn().
			Str("action", op).
			Strs("paths", paths).
			Err(err).
			Msg("view invalidation failed")
		return
	}
	log.Debug().Str("action", op).Strs("paths", paths).Msg("views invalidated")
}
