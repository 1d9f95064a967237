package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.lumeweb.com/provision/config"
	"go.lumeweb.com/provision/core"
	"go.lumeweb.com/provision/db"
	"go.lumeweb.com/provision/db/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testConfigValues() map[string]any {
	return map[string]any{
		"core.store.base_url":                  "https://shop.example.com",
		"core.store.name":                      "Main Store",
		"core.store.website_id":                3,
		"core.trans_email.ident_general.name":  "Shop Owner",
		"core.trans_email.ident_general.email": "owner@example.com",
		"core.mail.host":                       "smtp.example.com",
	}
}

func newTestConfig(t *testing.T, overrides map[string]any) config.Manager {
	t.Helper()

	values := testConfigValues()
	for k, v := range overrides {
		values[k] = v
	}

	cm, err := config.NewManagerFromMap(values)
	require.NoError(t, err)
	require.NoError(t, cm.Init())

	return cm
}

// newTestContext returns a context backed by a migrated sqlite database in a temp
// dir and a logger that records every entry.
func newTestContext(t *testing.T) (core.Context, *observer.ObservedLogs) {
	t.Helper()

	cm := newTestConfig(t, nil)

	zapCore, logs := observer.New(zap.DebugLevel)
	logger := core.NewLoggerFromZap(zap.New(zapCore))

	gdb, err := db.OpenSQLiteDatabase(filepath.Join(t.TempDir(), "provision.db"), core.NewLoggerFromZap(zap.NewNop()))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	ctx, err := core.NewContext(cm, logger, core.ContextWithDB(gdb))
	require.NoError(t, err)

	return ctx, logs
}

type fakeDirectory struct {
	GetFunc  func(ctx context.Context, email string) (core.Lookup, error)
	SaveFunc func(ctx context.Context, customer *models.Customer) error

	getCalls  int
	saveCalls int
	saved     []*models.Customer
}

func (f *fakeDirectory) Get(ctx context.Context, email string) (core.Lookup, error) {
	f.getCalls++
	if f.GetFunc != nil {
		return f.GetFunc(ctx, email)
	}
	return core.NotFound(), nil
}

func (f *fakeDirectory) Save(ctx context.Context, customer *models.Customer) error {
	f.saveCalls++
	f.saved = append(f.saved, customer)
	if f.SaveFunc != nil {
		return f.SaveFunc(ctx, customer)
	}
	customer.ID = uint(f.saveCalls)
	return nil
}

type fakeAccountManager struct {
	InitiatePasswordResetFunc func(ctx context.Context, email string, channel core.ResetChannel) (*models.PasswordReset, error)

	calls    int
	emails   []string
	channels []core.ResetChannel
}

func (f *fakeAccountManager) InitiatePasswordReset(ctx context.Context, email string, channel core.ResetChannel) (*models.PasswordReset, error) {
	f.calls++
	f.emails = append(f.emails, email)
	f.channels = append(f.channels, channel)
	if f.InitiatePasswordResetFunc != nil {
		return f.InitiatePasswordResetFunc(ctx, email, channel)
	}
	return &models.PasswordReset{Token: "reset-token", Channel: string(channel)}, nil
}

type fakeTransport struct {
	SendFunc func(ctx context.Context) error

	sends int
}

func (f *fakeTransport) Send(ctx context.Context) error {
	f.sends++
	if f.SendFunc != nil {
		return f.SendFunc(ctx)
	}
	return nil
}

type fakeNotifier struct {
	BuildFunc func(ctx context.Context, msg core.EmailMessage) (core.Transport, error)

	transport *fakeTransport
	messages  []core.EmailMessage
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{transport: &fakeTransport{}}
}

func (f *fakeNotifier) Build(ctx context.Context, msg core.EmailMessage) (core.Transport, error) {
	f.messages = append(f.messages, msg)
	if f.BuildFunc != nil {
		return f.BuildFunc(ctx, msg)
	}
	return f.transport, nil
}

type fakeSettings map[string]string

func (f fakeSettings) GetValue(key string) string {
	return f[key]
}

type fakeStores struct {
	store core.Store
}

func (f fakeStores) CurrentStore() core.Store {
	return f.store
}

func defaultFakeSettings() fakeSettings {
	return fakeSettings{
		core.SETTINGS_GENERAL_IDENTITY_NAME:  "Shop Owner",
		core.SETTINGS_GENERAL_IDENTITY_EMAIL: "owner@example.com",
	}
}

func defaultFakeStore() fakeStores {
	return fakeStores{store: core.Store{
		ID:        1,
		Code:      "default",
		Name:      "Main Store",
		WebsiteID: 3,
		BaseURL:   "https://shop.example.com/",
	}}
}
