package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.lumeweb.com/provision/core"
	"go.lumeweb.com/provision/db/models"
	"go.lumeweb.com/provision/event"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ core.AccountManager = (*AccountManagerDefault)(nil)
var _ core.Cronable = (*AccountManagerDefault)(nil)
var _ core.Service = (*AccountManagerDefault)(nil)

const (
	defaultResetTokenTTL    = time.Hour
	defaultResetPurgePeriod = time.Hour

	purgeExpiredResetsTask = "purge_expired_password_resets"
)

var resetChannels = []core.ResetChannel{
	core.ResetChannelEmail,
	core.ResetChannelEmailReset,
	core.ResetChannelEmailReminder,
}

type AccountManagerDefault struct {
	ctx         core.Context
	db          *gorm.DB
	logger      *core.Logger
	tokenTTL    time.Duration
	purgePeriod time.Duration
	now         func() time.Time
}

func NewAccountManager(ctx core.Context) *AccountManagerDefault {
	manager := &AccountManagerDefault{
		ctx:         ctx,
		db:          ctx.DB(),
		logger:      ctx.Logger(),
		tokenTTL:    defaultResetTokenTTL,
		purgePeriod: defaultResetPurgePeriod,
		now:         time.Now,
	}

	if cm := ctx.Config(); cm != nil && cm.Config() != nil {
		account := cm.Config().Core.Account
		if account.ResetTokenTTL > 0 {
			manager.tokenTTL = account.ResetTokenTTL
		}
		if account.ResetPurgePeriod > 0 {
			manager.purgePeriod = account.ResetPurgePeriod
		}
	}

	return manager
}

func (a *AccountManagerDefault) ID() string {
	return core.ACCOUNT_MANAGER
}

func (a *AccountManagerDefault) InitiatePasswordReset(ctx context.Context, email string, channel core.ResetChannel) (*models.PasswordReset, error) {
	if !lo.Contains(resetChannels, channel) {
		return nil, core.NewCustomerError(core.ErrKeyInvalidResetChannel, nil)
	}

	var customer models.Customer

	if err := a.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.NewCustomerError(core.ErrKeyCustomerNotFound, err)
		}

		return nil, core.NewCustomerError(core.ErrKeyDatabaseOperationFailed, err)
	}

	reset := models.PasswordReset{
		CustomerID: customer.ID,
		Token:      uuid.NewString(),
		Channel:    string(channel),
		ExpiresAt:  a.now().Add(a.tokenTTL),
	}

	// A new request supersedes any token issued earlier.
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("customer_id = ?", customer.ID).Delete(&models.PasswordReset{}).Error; err != nil {
			return err
		}

		return tx.Create(&reset).Error
	})
	if err != nil {
		return nil, core.NewCustomerError(core.ErrKeyPasswordResetFailed, err)
	}

	reset.Customer = customer

	if err := event.FirePasswordResetInitiatedEvent(a.ctx, &reset); err != nil {
		return nil, core.NewCustomerError(core.ErrKeyPasswordResetFailed, err)
	}

	return &reset, nil
}

// PurgeExpiredResets removes reset tokens whose expiry has passed and reports how
// many were dropped.
func (a *AccountManagerDefault) PurgeExpiredResets(ctx context.Context) (int64, error) {
	tx := a.db.WithContext(ctx).Unscoped().Where("expires_at <= ?", a.now()).Delete(&models.PasswordReset{})
	if tx.Error != nil {
		return 0, core.NewCustomerError(core.ErrKeyResetPurgeFailed, tx.Error)
	}

	return tx.RowsAffected, nil
}

func (a *AccountManagerDefault) ScheduleJobs(cron core.CronService) error {
	return cron.RegisterInterval(purgeExpiredResetsTask, a.purgePeriod, func(ctx context.Context) error {
		purged, err := a.PurgeExpiredResets(ctx)
		if err != nil {
			return err
		}

		if purged > 0 {
			a.logger.Info("purged expired password resets", zap.Int64("count", purged))
		}

		return nil
	})
}
