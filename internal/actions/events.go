package actions

import (
	"context"
	"net/http"

	"eventconsole/internal/api"
	"eventconsole/internal/domain/event"
)

// eventViews lists the views an event write can make stale. The organizer detail shows the
// organizer's events, so it is included when the organizer is known. Only the list view is
// cached; see mutate.
func eventViews(id, organizerID string) []string {
	views := []string{ListView(api.Events)}
	if id != "" {
		views = append(views, DetailView(api.Events, id))
	}
	if organizerID != "" {
		views = append(views, DetailView(api.Organizers, organizerID))
	}
	return views
}

func (a *Actions) CreateEvent(ctx context.Context, in event.Input) Result[event.Details] {
	return mutate[event.Details](ctx, a, "create_event", api.Events.List(),
		api.Request{Method: http.MethodPost, Data: in},
		eventViews("", in.OrganizerID)...)
}

func (a *Actions) UpdateEvent(ctx context.Context, id string, in event.Input) Result[event.Details] {
	return mutate[event.Details](ctx, a, "update_event", api.Events.ByID(id),
		api.Request{Method: http.MethodPut, Data: in},
		eventViews(id, in.OrganizerID)...)
}

func (a *Actions) DeleteEvent(ctx context.Context, id string) Result[None] {
	return mutate[None](ctx, a, "delete_event", api.Events.ByID(id),
		api.Request{Method: http.MethodDelete},
		eventViews(id, "")...)
}

// SuspendEvent has the same no-precheck semantics as SuspendOrganizer.
func (a *Actions) SuspendEvent(ctx context.Context, id string) Result[event.Details] {
	return mutate[event.Details](ctx, a, "suspend_event", api.Events.Action(id, api.ActionSuspend),
		api.Request{Method: http.MethodPost},
		eventViews(id, "")...)
}

func (a *Actions) UnsuspendEvent(ctx context.Context, id string) Result[event.Details] {
	return mutate[event.Details](ctx, a, "unsuspend_event", api.Events.Action(id, api.ActionUnsuspend),
		api.Request{Method: http.MethodPost},
		eventViews(id, "")...)
}
