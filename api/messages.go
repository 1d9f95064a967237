package api

type CheckCustomerRequest struct {
	Email string `json:"email"`
}

const messageEmailRequired = "email is required"
