package service

import (
	"context"
	"fmt"
	netmail "net/mail"

	"go.lumeweb.com/provision/core"
	"go.lumeweb.com/provision/db/models"
	"go.uber.org/zap"
)

var _ core.ProvisioningService = (*ProvisioningServiceDefault)(nil)
var _ core.Service = (*ProvisioningServiceDefault)(nil)

type ProvisioningServiceDefault struct {
	directory core.CustomerDirectory
	accounts  core.AccountManager
	notifier  core.NotificationSender
	settings  core.Settings
	stores    core.StoreManager
	logger    *core.Logger
}

func NewProvisioningService(directory core.CustomerDirectory, accounts core.AccountManager, notifier core.NotificationSender, settings core.Settings, stores core.StoreManager, logger *core.Logger) *ProvisioningServiceDefault {
	return &ProvisioningServiceDefault{
		directory: directory,
		accounts:  accounts,
		notifier:  notifier,
		settings:  settings,
		stores:    stores,
		logger:    logger,
	}
}

func (p *ProvisioningServiceDefault) ID() string {
	return core.PROVISIONING_SERVICE
}

func (p *ProvisioningServiceDefault) CheckCustomerByEmail(ctx context.Context, email string) core.Result {
	lookup, err := p.directory.Get(ctx, email)
	if err != nil {
		p.logger.Error("Error looking up customer", zap.String("email", email), zap.String("error_kind", string(core.ErrorKind(err))), zap.Error(err))
		return core.Result{Success: false, Message: core.MessageCustomerLookupFailed}
	}

	if lookup.Found() {
		customer := lookup.Customer()
		p.logger.Info("Customer found", customerFields(customer)...)
		return core.Result{Success: true, Message: core.MessageCustomerExists}
	}

	customer := &models.Customer{
		Email:     email,
		FirstName: core.NewCustomerFirstName,
		LastName:  core.NewCustomerLastName,
		WebsiteID: p.stores.CurrentStore().WebsiteID,
	}

	if err := p.directory.Save(ctx, customer); err != nil {
		message := core.MessageCustomerCreateFailed + err.Error()
		p.logger.Error(message, zap.String("error_kind", string(core.ErrorKind(err))))
		return core.Result{Success: false, Message: message}
	}

	p.logger.Info("New customer created", customerFields(customer)...)

	if !p.sendPasswordResetEmail(ctx, customer) {
		return core.Result{Success: false, Message: core.MessageCustomerCreatedNoEmail}
	}

	return core.Result{Success: true, Message: core.MessageCustomerCreated}
}

// sendPasswordResetEmail issues a reset token and mails the reset link. Every
// failure is logged and reported as false.
func (p *ProvisioningServiceDefault) sendPasswordResetEmail(ctx context.Context, customer *models.Customer) bool {
	sender := netmail.Address{
		Name:    p.settings.GetValue(core.SETTINGS_GENERAL_IDENTITY_NAME),
		Address: p.settings.GetValue(core.SETTINGS_GENERAL_IDENTITY_EMAIL),
	}

	store := p.stores.CurrentStore()

	err := p.deliverPasswordReset(ctx, customer, store, sender)
	if err != nil {
		p.logger.Error(fmt.Sprintf("Error sending email: %s", err.Error()), zap.String("error_kind", string(core.ErrorKind(err))), zap.String("email", customer.Email))
		return false
	}

	p.logger.Info(fmt.Sprintf("Password reset email sent to %s", customer.Email))

	return true
}

func (p *ProvisioningServiceDefault) deliverPasswordReset(ctx context.Context, customer *models.Customer, store core.Store, sender netmail.Address) error {
	reset, err := p.accounts.InitiatePasswordReset(ctx, customer.Email, core.ResetChannelEmail)
	if err != nil {
		return err
	}

	transport, err := p.notifier.Build(ctx, core.EmailMessage{
		TemplateID: core.MAILER_TPL_CUSTOM_PASSWORD_RESET,
		Options: core.TemplateOptions{
			Area:    core.MailerAreaFrontend,
			StoreID: store.ID,
		},
		Vars: core.MailerTemplateData{
			"customer_name":      customer.FullName(),
			"store_name":         store.Name,
			"reset_password_url": store.ResetPasswordURL(reset.Token),
		},
		From: sender,
		To: netmail.Address{
			Name:    customer.FullName(),
			Address: customer.Email,
		},
	})
	if err != nil {
		return err
	}

	return transport.Send(ctx)
}

func customerFields(customer *models.Customer) []zap.Field {
	return []zap.Field{
		zap.Uint("id", customer.ID),
		zap.String("email", customer.Email),
		zap.String("first_name", customer.FirstName),
		zap.String("last_name", customer.LastName),
	}
}
