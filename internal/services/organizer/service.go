package organizer

import (
	"context"

	"eventconsole/internal/api"
	"eventconsole/internal/domain/organizer"
	"eventconsole/internal/services/resource"
)

// Service reads organizers from the backend.
type Service struct {
	reader resource.Reader[organizer.Organizer, organizer.Details]
}

func NewService(client *api.Client) *Service {
	return &Service{reader: resource.NewReader[organizer.Organizer, organizer.Details](client, api.Organizers, "organizer")}
}

// GetAll returns one page of organizers. Absent params are not sent.
func (s *Service) GetAll(ctx context.Context, params *api.ListParams) (*api.Page[organizer.Organizer], error) {
	return s.reader.GetAll(ctx, params)
}

// GetByID returns the organizer detail, bypassing caches.
func (s *Service) GetByID(ctx context.Context, id string) (*organizer.Details, error) {
	return s.reader.GetByID(ctx, id)
}
