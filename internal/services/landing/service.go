package landing

import (
	"context"

	"eventconsole/internal/api"
	"eventconsole/internal/domain/landing"
	"eventconsole/internal/services/resource"
)

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// GetByEvent returns the landing page of an event, or a 404 *api.Error when it has none yet.
func (s *Service) GetByEvent(ctx context.Context, eventID string) (*landing.Page, error) {
	return resource.Fresh[landing.Page](ctx, s.client, api.LandingByEventPath(eventID), "landing page")
}
