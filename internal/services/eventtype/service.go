package eventtype

import (
	"context"

	"eventconsole/internal/api"
	"eventconsole/internal/domain/eventtype"
	"eventconsole/internal/services/resource"
)

// Service reads event types from the backend.
type Service struct {
	reader resource.Reader[eventtype.EventType, eventtype.Details]
}

func NewService(client *api.Client) *Service {
	return &Service{reader: resource.NewReader[eventtype.EventType, eventtype.Details](client, api.EventTypes, "event type")}
}

// GetAll returns one page of event types. Absent params are not sent.
func (s *Service) GetAll(ctx context.Context, params *api.ListParams) (*api.Page[eventtype.EventType], error) {
	return s.reader.GetAll(ctx, params)
}

// GetByID returns the event type detail, bypassing caches.
func (s *Service) GetByID(ctx context.Context, id string) (*eventtype.Details, error) {
	return s.reader.GetByID(ctx, id)
}
