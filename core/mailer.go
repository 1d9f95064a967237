package core

import (
	"context"
	"net/mail"
)

const MAILER_SERVICE = "mailer"

const MAILER_TPL_CUSTOM_PASSWORD_RESET = "custom_password_reset_template"

const (
	MailerAreaFrontend  = "frontend"
	MailerAreaAdminhtml = "adminhtml"
)

type MailerTemplateData = map[string]any

type TemplateOptions struct {
	Area    string
	StoreID uint
}

// EmailMessage describes a templated message before it is rendered.
type EmailMessage struct {
	TemplateID string
	Options    TemplateOptions
	Vars       MailerTemplateData
	From       mail.Address
	To         mail.Address
}

// Transport is a rendered message ready for delivery.
type Transport interface {
	Send(ctx context.Context) error
}

type NotificationSender interface {
	Build(ctx context.Context, msg EmailMessage) (Transport, error)
}
