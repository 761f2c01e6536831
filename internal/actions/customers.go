package actions

import (
	"context"
	"net/http"

	"eventconsole/internal/api"
	"eventconsole/internal/domain/customer"
)

func (a *Actions) CreateCustomer(ctx context.Context, in customer.Input) Result[customer.Details] {
	return mutate[customer.Details](ctx, a, "create_customer", api.Customers.List(),
		api.Request{Method: http.MethodPost, Data: in},
		ListView(api.Customers))
}

func (a *Actions) UpdateCustomer(ctx context.Context, id string, in customer.Input) Result[customer.Details] {
	return mutate[customer.Details](ctx, a, "update_customer", api.Customers.ByID(id),
		api.Request{Method: http.MethodPut, Data: in},
		ListView(api.Customers), DetailView(api.Customers, id))
}

func (a *Actions) DeleteCustomer(ctx context.Context, id string) Result[None] {
	return mutate[None](ctx, a, "delete_customer", api.Customers.ByID(id),
		api.Request{Method: http.MethodDelete},
		ListView(api.Customers), DetailView(api.Customers, id))
}
