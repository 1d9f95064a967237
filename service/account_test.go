package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lumeweb.com/provision/core"
	"go.lumeweb.com/provision/db/models"
	"go.lumeweb.com/provision/event"
)

func seedCustomer(t *testing.T, ctx core.Context, email string) *models.Customer {
	t.Helper()

	customer := &models.Customer{Email: email, FirstName: "New", LastName: "Customer", WebsiteID: 1}
	require.NoError(t, ctx.DB().Create(customer).Error)

	return customer
}

func TestInitiatePasswordResetIssuesToken(t *testing.T) {
	ctx, _ := newTestContext(t)
	customer := seedCustomer(t, ctx, "reset@example.com")

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	accounts := NewAccountManager(ctx)
	accounts.now = func() time.Time { return now }

	var fired *models.PasswordReset
	event.Listen[*event.PasswordResetInitiatedEvent](ctx, event.EVENT_PASSWORD_RESET_INITIATED, func(evt *event.PasswordResetInitiatedEvent) error {
		fired = evt.Reset()
		return nil
	})

	issued, err := accounts.InitiatePasswordReset(context.Background(), customer.Email, core.ResetChannelEmail)
	require.NoError(t, err)

	var resets []models.PasswordReset
	require.NoError(t, ctx.DB().Where("customer_id = ?", customer.ID).Find(&resets).Error)
	require.Len(t, resets, 1)
	assert.Equal(t, resets[0].Token, issued.Token)

	assert.Len(t, resets[0].Token, 36)
	assert.Equal(t, string(core.ResetChannelEmail), resets[0].Channel)
	assert.True(t, resets[0].ExpiresAt.Equal(now.Add(time.Hour)))

	require.NotNil(t, fired)
	assert.Equal(t, resets[0].Token, fired.Token)
	assert.Equal(t, customer.Email, fired.Customer.Email)
}

func TestInitiatePasswordResetReplacesEarlierToken(t *testing.T) {
	ctx, _ := newTestContext(t)
	customer := seedCustomer(t, ctx, "again@example.com")
	accounts := NewAccountManager(ctx)

	_, err := accounts.InitiatePasswordReset(context.Background(), customer.Email, core.ResetChannelEmail)
	require.NoError(t, err)

	var first models.PasswordReset
	require.NoError(t, ctx.DB().Where("customer_id = ?", customer.ID).First(&first).Error)

	_, err = accounts.InitiatePasswordReset(context.Background(), customer.Email, core.ResetChannelEmailReminder)
	require.NoError(t, err)

	var resets []models.PasswordReset
	require.NoError(t, ctx.DB().Unscoped().Where("customer_id = ?", customer.ID).Find(&resets).Error)
	require.Len(t, resets, 1)
	assert.NotEqual(t, first.Token, resets[0].Token)
	assert.Equal(t, string(core.ResetChannelEmailReminder), resets[0].Channel)
}

func TestInitiatePasswordResetErrors(t *testing.T) {
	ctx, _ := newTestContext(t)
	seedCustomer(t, ctx, "known@example.com")
	accounts := NewAccountManager(ctx)

	_, err := accounts.InitiatePasswordReset(context.Background(), "known@example.com", core.ResetChannel("sms"))
	assert.Equal(t, core.ErrKeyInvalidResetChannel, core.ErrorKind(err))

	_, err = accounts.InitiatePasswordReset(context.Background(), "unknown@example.com", core.ResetChannelEmail)
	assert.Equal(t, core.ErrKeyCustomerNotFound, core.ErrorKind(err))
}

func TestNewAccountManagerReadsConfig(t *testing.T) {
	base, _ := newTestContext(t)

	cm := newTestConfig(t, map[string]any{
		"core.account.reset_token_ttl":    "15m",
		"core.account.reset_purge_period": "10m",
	})
	ctx, err := core.NewContext(cm, base.Logger(), core.ContextWithDB(base.DB()))
	require.NoError(t, err)

	accounts := NewAccountManager(ctx)
	assert.Equal(t, 15*time.Minute, accounts.tokenTTL)
	assert.Equal(t, 10*time.Minute, accounts.purgePeriod)
}

func TestPurgeExpiredResets(t *testing.T) {
	ctx, _ := newTestContext(t)
	customer := seedCustomer(t, ctx, "purge@example.com")
	other := seedCustomer(t, ctx, "keep@example.com")

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, ctx.DB().Create(&models.PasswordReset{CustomerID: customer.ID, Token: "expired", Channel: "email", ExpiresAt: now.Add(-time.Minute)}).Error)
	require.NoError(t, ctx.DB().Create(&models.PasswordReset{CustomerID: other.ID, Token: "fresh", Channel: "email", ExpiresAt: now.Add(time.Minute)}).Error)

	accounts := NewAccountManager(ctx)
	accounts.now = func() time.Time { return now }

	purged, err := accounts.PurgeExpiredResets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var remaining []models.PasswordReset
	require.NoError(t, ctx.DB().Unscoped().Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "fresh", remaining[0].Token)
}

type recordingCron struct {
	names     []string
	intervals []time.Duration
	tasks     []core.CronTaskFunction
}

func (r *recordingCron) RegisterInterval(name string, interval time.Duration, fn core.CronTaskFunction) error {
	r.names = append(r.names, name)
	r.intervals = append(r.intervals, interval)
	r.tasks = append(r.tasks, fn)
	return nil
}

func (r *recordingCron) Start() error { return nil }

func (r *recordingCron) Stop() error { return nil }

func TestAccountManagerScheduleJobs(t *testing.T) {
	ctx, logs := newTestContext(t)
	customer := seedCustomer(t, ctx, "cron@example.com")
	require.NoError(t, ctx.DB().Create(&models.PasswordReset{CustomerID: customer.ID, Token: "old", Channel: "email", ExpiresAt: time.Now().Add(-time.Hour)}).Error)

	accounts := NewAccountManager(ctx)
	cron := &recordingCron{}

	require.NoError(t, accounts.ScheduleJobs(cron))
	require.Equal(t, []string{purgeExpiredResetsTask}, cron.names)
	assert.Equal(t, time.Hour, cron.intervals[0])

	require.NoError(t, cron.tasks[0](context.Background()))
	assert.Equal(t, 1, logs.FilterMessage("purged expired password resets").Len())
}
