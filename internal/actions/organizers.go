package actions

import (
	"context"
	"net/http"

	"eventconsole/internal/api"
	"eventconsole/internal/domain/organizer"
)

func (a *Actions) CreateOrganizer(ctx context.Context, in organizer.Input) Result[organizer.Details] {
	return mutate[organizer.Details](ctx, a, "create_organizer", api.Organizers.List(),
		api.Request{Method: http.MethodPost, Data: in},
		ListView(api.Organizers))
}

func (a *Actions) UpdateOrganizer(ctx context.Context, id string, in organizer.Input) Result[organizer.Details] {
	return mutate[organizer.Details](ctx, a, "update_organizer", api.Organizers.ByID(id),
		api.Request{Method: http.MethodPut, Data: in},
		ListView(api.Organizers), DetailView(api.Organizers, id))
}

func (a *Actions) DeleteOrganizer(ctx context.Context, id string) Result[None] {
	return mutate[None](ctx, a, "delete_organizer", api.Organizers.ByID(id),
		api.Request{Method: http.MethodDelete},
		ListView(api.Organizers), DetailView(api.Organizers, id))
}

// SuspendOrganizer asks the backend to suspend the organizer. The current status is not
// checked first; the backend decides whether the transition is allowed.
func (a *Actions) SuspendOrganizer(ctx context.Context, id string, in organizer.SuspendInput) Result[organizer.Details] {
	var body any
	if in.Reason != "" {
		body = in
	}
	return mutate[organizer.Details](ctx, a, "suspend_organizer", api.Organizers.Action(id, api.ActionSuspend),
		api.Request{Method: http.MethodPost, Data: body},
		ListView(api.Organizers), DetailView(api.Organizers, id))
}

func (a *Actions) UnsuspendOrganizer(ctx context.Context, id string) Result[organizer.Details] {
	return mutate[organizer.Details](ctx, a, "unsuspend_organizer", api.Organizers.Action(id, api.ActionUnsuspend),
		api.Request{Method: http.MethodPost},
		ListView(api.Organizers), DetailView(api.Organizers, id))
}
