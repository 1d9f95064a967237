package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lumeweb.com/provision/core"
)

func TestCronServiceRunsRegisteredJob(t *testing.T) {
	ctx, logs := newTestContext(t)

	cron, opts, err := NewCronService(ctx)
	require.NoError(t, err)
	require.Len(t, opts, 2)

	require.NoError(t, cron.RegisterInterval("tick", 20*time.Millisecond, func(context.Context) error {
		return errors.New("tick failed")
	}))

	ctx, err = ctx.Apply(opts...)
	require.NoError(t, err)

	for _, f := range ctx.StartupFuncs() {
		require.NoError(t, f(ctx))
	}

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("Job failed").Len() > 0
	}, 2*time.Second, 10*time.Millisecond)

	for _, f := range ctx.ExitFuncs() {
		require.NoError(t, f(ctx))
	}
}

func TestCronServiceRejectsInvalidInterval(t *testing.T) {
	ctx, _ := newTestContext(t)

	cron, _, err := NewCronService(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.CRON_SERVICE, cron.ID())

	assert.Error(t, cron.RegisterInterval("never", 0, func(context.Context) error { return nil }))
}
