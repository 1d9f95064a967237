package core

import (
	"context"

	"go.lumeweb.com/provision/db/models"
)

const ACCOUNT_MANAGER = "account_manager"

type ResetChannel string

const (
	ResetChannelEmail         ResetChannel = "email"
	ResetChannelEmailReset    ResetChannel = "email_reset"
	ResetChannelEmailReminder ResetChannel = "email_reminder"
)

type AccountManager interface {
	// InitiatePasswordReset issues a reset token for the customer with the given email
	// and returns the stored reset.
	InitiatePasswordReset(ctx context.Context, email string, channel ResetChannel) (*models.PasswordReset, error)
}
