package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-gorm/caches/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lumeweb.com/provision/config"
	"go.lumeweb.com/provision/core"
	"go.lumeweb.com/provision/db/models"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T, values map[string]any) config.Manager {
	t.Helper()

	base := map[string]any{
		"core.store.base_url":                  "https://shop.example.com",
		"core.trans_email.ident_general.email": "owner@example.com",
		"core.mail.host":                       "smtp.example.com",
		"core.db.file":                         filepath.Join(t.TempDir(), "provision.db"),
	}
	for k, v := range values {
		base[k] = v
	}

	cm, err := config.NewManagerFromMap(base)
	require.NoError(t, err)
	require.NoError(t, cm.Init())

	return cm
}

func TestNewDatabaseSQLiteMigrates(t *testing.T) {
	cm := newTestManager(t, map[string]any{"core.db.cache.mode": "memory"})
	logger := core.NewLoggerFromZap(zap.NewNop())

	db, opts, err := NewDatabase(cm, logger)
	require.NoError(t, err)
	require.NotNil(t, db)

	ctx, err := core.NewContext(cm, logger, opts...)
	require.NoError(t, err)
	assert.Same(t, db, ctx.DB())

	for _, f := range ctx.StartupFuncs() {
		require.NoError(t, f(ctx))
	}

	assert.True(t, db.Migrator().HasTable(&models.Customer{}))
	assert.True(t, db.Migrator().HasTable(&models.PasswordReset{}))

	for _, f := range ctx.ExitFuncs() {
		require.NoError(t, f(ctx))
	}
}

func TestNewDatabaseRejectsInvalidCacheMode(t *testing.T) {
	cm := newTestManager(t, nil)
	cm.Config().Core.DB.Cache = &config.CacheConfig{Mode: "disk"}

	_, _, err := NewDatabase(cm, core.NewLoggerFromZap(zap.NewNop()))
	assert.Error(t, err)
}

func TestMemoryCacherRoundTrip(t *testing.T) {
	c := &memoryCacher{}
	ctx := context.Background()

	miss, err := c.Get(ctx, "k", &caches.Query[any]{})
	require.NoError(t, err)
	assert.Nil(t, miss)

	q := &caches.Query[any]{Dest: map[string]any{"email": "a@example.com"}, RowsAffected: 1}
	require.NoError(t, c.Store(ctx, "k", q))

	hit, err := c.Get(ctx, "k", &caches.Query[any]{})
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, int64(1), hit.RowsAffected)

	require.NoError(t, c.Invalidate(ctx))

	miss, err = c.Get(ctx, "k", &caches.Query[any]{})
	require.NoError(t, err)
	assert.Nil(t, miss)
}
