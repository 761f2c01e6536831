package customization

import (
	"context"

	"eventconsole/internal/api"
	"eventconsole/internal/domain/customization"
	"eventconsole/internal/services/resource"
)

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// GetByEvent returns the branding of an event. The editor always needs the latest saved values.
func (s *Service) GetByEvent(ctx context.Context, eventID string) (*customization.Customization, error) {
	return resource.Fresh[customization.Customization](ctx, s.client, api.CustomizationPath(eventID), "event customization")
}
