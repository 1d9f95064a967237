package core

import (
	"context"

	"go.lumeweb.com/provision/db/models"
)

const CUSTOMER_DIRECTORY = "customer_directory"

// Lookup is the outcome of a directory lookup: either Found with the stored
// customer, or NotFound. Failures of the directory itself are reported as errors
// next to the Lookup, never encoded in it.
type Lookup struct {
	customer *models.Customer
}

func Found(customer *models.Customer) Lookup {
	return Lookup{customer: customer}
}

func NotFound() Lookup {
	return Lookup{}
}

func (l Lookup) Found() bool {
	return l.customer != nil
}

func (l Lookup) Customer() *models.Customer {
	return l.customer
}

// CustomerDirectory stores customer records keyed by email.
//
// Implementations must enforce email uniqueness: when two creates race for the
// same email, the loser's Save returns a CustomerError with ErrKeyEmailAlreadyExists.
type CustomerDirectory interface {
	// Get looks a customer up by email. A missing customer is NotFound with a nil error.
	Get(ctx context.Context, email string) (Lookup, error)

	// Save persists a new customer, filling in its ID.
	Save(ctx context.Context, customer *models.Customer) error
}
