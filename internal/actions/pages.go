package actions

import (
	"context"
	"net/http"

	"eventconsole/internal/api"
	"eventconsole/internal/domain/customization"
	"eventconsole/internal/domain/landing"
)

func (a *Actions) UpdateCustomization(ctx context.Context, eventID string, in customization.Input) Result[customization.Customization] {
	return mutate[customization.Customization](ctx, a, "update_customization", api.CustomizationPath(eventID),
		api.Request{Method: http.MethodPut, Data: in},
		CustomizationView(eventID), DetailView(api.Events, eventID))
}

func (a *Actions) CreateLandingPage(ctx context.Context, in landing.Input) Result[landing.Page] {
	if in.Slug == "" {
		in.Slug = landing.Slugify(in.Title)
	}
	return mutate[landing.Page](ctx, a, "create_landing_page", api.Landing.List(),
		api.Request{Method: http.MethodPost, Data: in},
		landingViews(in.EventID)...)
}

func (a *Actions) UpdateLandingPage(ctx context.Context, id string, in landing.Input) Result[landing.Page] {
	return mutate[landing.Page](ctx, a, "update_landing_page", api.Landing.ByID(id),
		api.Request{Method: http.MethodPut, Data: in},
		landingViews(in.EventID)...)
}

func landingViews(eventID string) []string {
	if eventID == "" {
		return nil
	}
	return []string{LandingView(eventID)}
}
