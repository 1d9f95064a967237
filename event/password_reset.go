package event

import (
	"go.lumeweb.com/provision/core"
	"go.lumeweb.com/provision/db/models"
)

const (
	EVENT_PASSWORD_RESET_INITIATED = "customer.password_reset.initiated"
)

func init() {
	core.RegisterEvent(EVENT_PASSWORD_RESET_INITIATED, func() core.Eventer {
		return &PasswordResetInitiatedEvent{}
	})
}

type PasswordResetInitiatedEvent struct {
	core.Event
}

func (e *PasswordResetInitiatedEvent) SetReset(reset *models.PasswordReset) {
	e.Set("reset", reset)
}

func (e PasswordResetInitiatedEvent) Reset() *models.PasswordReset {
	return e.Get("reset").(*models.PasswordReset)
}

func (e PasswordResetInitiatedEvent) Channel() core.ResetChannel {
	return core.ResetChannel(e.Reset().Channel)
}

func FirePasswordResetInitiatedEvent(ctx core.Context, reset *models.PasswordReset) error {
	return Fire[*PasswordResetInitiatedEvent](ctx, EVENT_PASSWORD_RESET_INITIATED, func(evt *PasswordResetInitiatedEvent) error {
		evt.SetReset(reset)
		return nil
	})
}
