package service

import (
	"context"
	"errors"
	"strings"

	"github.com/resend/resend-go/v3"
	"github.com/wneessen/go-mail"
	"go.lumeweb.com/provision/config"
	"go.lumeweb.com/provision/core"
	"go.lumeweb.com/provision/service/internal/mailer"
)

var _ core.NotificationSender = (*Mailer)(nil)
var _ core.Service = (*Mailer)(nil)
var _ core.Transport = (*mailTransport)(nil)

// mailDriver delivers a rendered email.
type mailDriver interface {
	Send(ctx context.Context, email *mailer.Email) error
	Close() error
}

type Mailer struct {
	driver           mailDriver
	templateRegistry *mailer.TemplateRegistry
}

func NewMailer(ctx core.Context) (*Mailer, []core.ContextBuilderOption, error) {
	registry := NewMailerTemplateRegistry()
	if err := registry.LoadTemplates(); err != nil {
		return nil, nil, err
	}

	driver, err := newMailDriver(ctx.Config().Config().Core.Mail)
	if err != nil {
		return nil, nil, err
	}

	m := newMailer(registry, driver)

	opts := core.ContextOptions(
		core.ContextWithExitFunc(func(ctx core.Context) error {
			return m.driver.Close()
		}),
	)

	return m, opts, nil
}

func newMailer(registry *mailer.TemplateRegistry, driver mailDriver) *Mailer {
	return &Mailer{
		driver:           driver,
		templateRegistry: registry,
	}
}

func NewMailerTemplateRegistry() *mailer.TemplateRegistry {
	return mailer.NewTemplateRegistry()
}

func (m *Mailer) ID() string {
	return core.MAILER_SERVICE
}

// Build renders msg and validates its addresses. Nothing is sent until the returned
// transport's Send is called.
func (m *Mailer) Build(_ context.Context, msg core.EmailMessage) (core.Transport, error) {
	if msg.From.Address == "" {
		return nil, core.NewCustomerError(core.ErrKeySenderNotConfigured, nil)
	}

	email, err := m.templateRegistry.RenderTemplate(msg.TemplateID, msg.Options, msg.Vars)
	if err != nil {
		if errors.Is(err, mailer.ErrTemplateNotFound) {
			return nil, core.NewCustomerError(core.ErrKeyTemplateNotFound, err)
		}

		return nil, core.NewCustomerError(core.ErrKeyMessageBuildFailed, err)
	}

	email.SetFrom(msg.From)
	email.SetTo(msg.To)

	if _, err := email.ToMessage(); err != nil {
		return nil, core.NewCustomerError(core.ErrKeyMessageBuildFailed, err)
	}

	return &mailTransport{email: email, driver: m.driver}, nil
}

type mailTransport struct {
	email  *mailer.Email
	driver mailDriver
}

func (t *mailTransport) Send(ctx context.Context) error {
	if err := t.driver.Send(ctx, t.email); err != nil {
		return core.NewCustomerError(core.ErrKeyMessageSendFailed, err)
	}

	return nil
}

func newMailDriver(cfg config.MailConfig) (mailDriver, error) {
	switch cfg.Driver {
	case config.MailDriverResend:
		return &resendDriver{client: resend.NewClient(cfg.APIKey)}, nil
	default:
		return newSMTPDriver(cfg)
	}
}

type smtpDriver struct {
	client *mail.Client
}

func newSMTPDriver(cfg config.MailConfig) (*smtpDriver, error) {
	var options []mail.Option

	if cfg.Port != 0 {
		options = append(options, mail.WithPort(cfg.Port))
	}

	if cfg.AuthType != "" {
		options = append(options, mail.WithSMTPAuth(mail.SMTPAuthType(strings.ToUpper(cfg.AuthType))))
	}

	if cfg.SSL {
		options = append(options, mail.WithSSLPort(true))
	}

	options = append(options, mail.WithUsername(cfg.Username))
	options = append(options, mail.WithPassword(cfg.Password))

	client, err := mail.NewClient(cfg.Host, options...)
	if err != nil {
		return nil, err
	}

	return &smtpDriver{client: client}, nil
}

func (d *smtpDriver) Send(ctx context.Context, email *mailer.Email) error {
	msg, err := email.ToMessage()
	if err != nil {
		return err
	}

	return d.client.DialAndSendWithContext(ctx, msg)
}

// Close is a no-op. DialAndSendWithContext opens and closes a connection per
// message, so the client never holds one between sends.
func (d *smtpDriver) Close() error {
	return nil
}

type resendDriver struct {
	client *resend.Client
}

func (d *resendDriver) Send(_ context.Context, email *mailer.Email) error {
	from := email.From()
	to := email.To()

	params := &resend.SendEmailRequest{
		From:    from.String(),
		To:      []string{to.String()},
		Subject: email.Subject(),
		Text:    email.Body(),
	}

	_, err := d.client.Emails.Send(params)
	return err
}

func (d *resendDriver) Close() error {
	return nil
}
