package customer

import (
	"context"

	"eventconsole/internal/api"
	"eventconsole/internal/domain/customer"
	"eventconsole/internal/services/resource"
)

// Service reads customers from the backend.
type Service struct {
	reader resource.Reader[customer.Customer, customer.Details]
}

func NewService(client *api.Client) *Service {
	return &Service{reader: resource.NewReader[customer.Customer, customer.Details](client, api.Customers, "customer")}
}

// GetAll returns one page of customers. Absent params are not sent.
func (s *Service) GetAll(ctx context.Context, params *api.ListParams) (*api.Page[customer.Customer], error) {
	return s.reader.GetAll(ctx, params)
}

// GetByID returns the customer detail, bypassing caches.
func (s *Service) GetByID(ctx context.Context, id string) (*customer.Details, error) {
	return s.reader.GetByID(ctx, id)
}
