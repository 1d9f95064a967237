package core

import "context"

const PROVISIONING_SERVICE = "provisioning"

const (
	MessageCustomerExists         = "Customer exists."
	MessageCustomerCreated        = "New customer created and password reset email sent."
	MessageCustomerCreatedNoEmail = "New customer created but unable to send password reset email. Please try again later."
	MessageCustomerCreateFailed   = "Error creating customer: "
	MessageCustomerLookupFailed   = "Unable to look up customer. Please try again later."
)

const (
	NewCustomerFirstName = "New"
	NewCustomerLastName  = "Customer"
)

type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ProvisioningService interface {
	// CheckCustomerByEmail returns whether a customer exists for the email, creating
	// one and sending a password reset email when it does not.
	CheckCustomerByEmail(ctx context.Context, email string) Result
}
