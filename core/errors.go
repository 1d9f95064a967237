package core

import (
	"errors"
	"fmt"
)

type CustomerErrorType string

const (
	// Customer lookup errors
	ErrKeyCustomerNotFound     CustomerErrorType = "ErrCustomerNotFound"
	ErrKeyDirectoryUnavailable CustomerErrorType = "ErrDirectoryUnavailable"

	// Customer creation errors
	ErrKeyCustomerCreationFailed CustomerErrorType = "ErrCustomerCreationFailed"
	ErrKeyEmailAlreadyExists     CustomerErrorType = "ErrEmailAlreadyExists"
	ErrKeyInvalidEmail           CustomerErrorType = "ErrInvalidEmail"
	ErrKeyWebsiteRequired        CustomerErrorType = "ErrWebsiteRequired"

	// Password reset errors
	ErrKeyPasswordResetFailed CustomerErrorType = "ErrPasswordResetFailed"
	ErrKeyInvalidResetChannel CustomerErrorType = "ErrInvalidResetChannel"
	ErrKeyResetPurgeFailed    CustomerErrorType = "ErrResetPurgeFailed"

	// Notification errors
	ErrKeyTemplateNotFound    CustomerErrorType = "ErrTemplateNotFound"
	ErrKeyMessageBuildFailed  CustomerErrorType = "ErrMessageBuildFailed"
	ErrKeyMessageSendFailed   CustomerErrorType = "ErrMessageSendFailed"
	ErrKeySenderNotConfigured CustomerErrorType = "ErrSenderNotConfigured"

	// General errors
	ErrKeyDatabaseOperationFailed CustomerErrorType = "ErrDatabaseOperationFailed"
	ErrKeyUnknown                 CustomerErrorType = "ErrUnknown"
)

var defaultErrorMessages = map[CustomerErrorType]string{
	// Customer lookup errors
	ErrKeyCustomerNotFound:     "No customer exists with the provided email address.",
	ErrKeyDirectoryUnavailable: "The customer directory could not be reached.",

	// Customer creation errors
	ErrKeyCustomerCreationFailed: "Customer creation failed",
	ErrKeyEmailAlreadyExists:     "The email address provided is already in use.",
	ErrKeyInvalidEmail:           "The email address provided is invalid.",
	ErrKeyWebsiteRequired:        "A website must be assigned to the customer.",

	// Password reset errors
	ErrKeyPasswordResetFailed: "Failed to initiate the password reset.",
	ErrKeyInvalidResetChannel: "The password reset channel is not supported.",
	ErrKeyResetPurgeFailed:    "Failed to purge expired password resets.",

	// Notification errors
	ErrKeyTemplateNotFound:    "The email template was not found.",
	ErrKeyMessageBuildFailed:  "Failed to build the email message.",
	ErrKeyMessageSendFailed:   "Failed to send the email message.",
	ErrKeySenderNotConfigured: "The email sender identity is not configured.",

	// General errors
	ErrKeyDatabaseOperationFailed: "A database operation failed.",
	ErrKeyUnknown:                 "An unknown error occurred",
}

type CustomerError struct {
	Key     CustomerErrorType // A unique identifier for the error type
	Message string            // Human-readable error message
	Err     error             // Underlying error, if any
}

func (e *CustomerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CustomerError) Unwrap() error {
	return e.Err
}

func (e *CustomerError) IsErrorType(key CustomerErrorType) bool {
	return e.Key == key
}

func NewCustomerError(key CustomerErrorType, err error, customMessage ...string) *CustomerError {
	message, exists := defaultErrorMessages[key]
	if !exists {
		message = defaultErrorMessages[ErrKeyUnknown]
	}
	if len(customMessage) > 0 {
		message = customMessage[0]
	}
	return &CustomerError{
		Key:     key,
		Message: message,
		Err:     err,
	}
}

func IsCustomerError(err error) bool {
	return AsCustomerError(err) != nil
}

// AsCustomerError returns the first CustomerError in err's chain, or nil.
func AsCustomerError(err error) *CustomerError {
	if err == nil {
		return nil
	}

	var e *CustomerError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ErrorKind classifies err for structured logging. Errors from outside the
// taxonomy report ErrUnknown.
func ErrorKind(err error) CustomerErrorType {
	if e := AsCustomerError(err); e != nil {
		return e.Key
	}

	return ErrKeyUnknown
}
