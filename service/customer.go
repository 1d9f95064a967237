package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"go.lumeweb.com/provision/core"
	"go.lumeweb.com/provision/db/models"
	"go.lumeweb.com/provision/event"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ core.CustomerDirectory = (*CustomerDirectoryDefault)(nil)
var _ core.Service = (*CustomerDirectoryDefault)(nil)

const mysqlErrDuplicateEntry = 1062

type CustomerDirectoryDefault struct {
	ctx    core.Context
	db     *gorm.DB
	logger *core.Logger
}

func NewCustomerDirectory(ctx core.Context) *CustomerDirectoryDefault {
	return &CustomerDirectoryDefault{
		ctx:    ctx,
		db:     ctx.DB(),
		logger: ctx.Logger(),
	}
}

func (d *CustomerDirectoryDefault) ID() string {
	return core.CUSTOMER_DIRECTORY
}

func (d *CustomerDirectoryDefault) Get(ctx context.Context, email string) (core.Lookup, error) {
	var customer models.Customer

	err := d.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.NotFound(), nil
		}

		return core.NotFound(), core.NewCustomerError(core.ErrKeyDirectoryUnavailable, err)
	}

	return core.Found(&customer), nil
}

func (d *CustomerDirectoryDefault) Save(ctx context.Context, customer *models.Customer) error {
	if err := d.db.WithContext(ctx).Create(customer).Error; err != nil {
		return classifyCreateError(err)
	}

	if err := event.FireCustomerCreatedEvent(d.ctx, customer); err != nil {
		d.logger.Error("customer created listener failed", zap.Uint("id", customer.ID), zap.Error(err))
	}

	return nil
}

func classifyCreateError(err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidEmail):
		return core.NewCustomerError(core.ErrKeyInvalidEmail, nil)
	case errors.Is(err, models.ErrWebsiteRequired):
		return core.NewCustomerError(core.ErrKeyWebsiteRequired, nil)
	case isDuplicateKeyError(err):
		return core.NewCustomerError(core.ErrKeyEmailAlreadyExists, nil)
	default:
		return core.NewCustomerError(core.ErrKeyCustomerCreationFailed, err)
	}
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
		return true
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
