package event

import (
	"context"

	"eventconsole/internal/api"
	"eventconsole/internal/domain/event"
	"eventconsole/internal/services/resource"
)

// Service handles event reads
type Service struct {
	reader resource.Reader[event.Event, event.Details]
}

// NewService creates a new event service
func NewService(client *api.Client) *Service {
	return &Service{reader: resource.NewReader[event.Event, event.Details](client, api.Events, "event")}
}

// GetAll retrieves one page of events
func (s *Service) GetAll(ctx context.Context, params *api.ListParams) (*api.Page[event.Event], error) {
	return s.reader.GetAll(ctx, params)
}

// GetByID retrieves the current state of a single event
func (s *Service) GetByID(ctx context.Context, id string) (*event.Details, error) {
	return s.reader.GetByID(ctx, id)
}
