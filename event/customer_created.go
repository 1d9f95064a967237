package event

import (
	"go.lumeweb.com/provision/core"
	"go.lumeweb.com/provision/db/models"
)

const (
	EVENT_CUSTOMER_CREATED = "customer.created"
)

func init() {
	core.RegisterEvent(EVENT_CUSTOMER_CREATED, func() core.Eventer {
		return &CustomerCreatedEvent{}
	})
}

type CustomerCreatedEvent struct {
	core.Event
}

func (e *CustomerCreatedEvent) SetCustomer(customer *models.Customer) {
	e.Set("customer", customer)
}

func (e CustomerCreatedEvent) Customer() *models.Customer {
	return e.Get("customer").(*models.Customer)
}

func FireCustomerCreatedEvent(ctx core.Context, customer *models.Customer) error {
	return Fire[*CustomerCreatedEvent](ctx, EVENT_CUSTOMER_CREATED, func(evt *CustomerCreatedEvent) error {
		evt.SetCustomer(customer)
		return nil
	})
}
