package actions

import (
	"context"
	"net/http"

	"eventconsole/internal/api"
	"eventconsole/internal/domain/eventtype"
)

func (a *Actions) CreateEventType(ctx context.Context, in eventtype.Input) Result[eventtype.Details] {
	return mutate[eventtype.Details](ctx, a, "create_event_type", api.EventTypes.List(),
		api.Request{Method: http.MethodPost, Data: in},
		ListView(api.EventTypes))
}

func (a *Actions) UpdateEventType(ctx context.Context, id string, in eventtype.Input) Result[eventtype.Details] {
	return mutate[eventtype.Details](ctx, a, "update_event_type", api.EventTypes.ByID(id),
		api.Request{Method: http.MethodPut, Data: in},
		ListView(api.EventTypes), DetailView(api.EventTypes, id))
}

func (a *Actions) DeleteEventType(ctx context.Context, id string) Result[None] {
	return mutate[None](ctx, a, "delete_event_type", api.EventTypes.ByID(id),
		api.Request{Method: http.MethodDelete},
		ListView(api.EventTypes), DetailView(api.EventTypes, id))
}
