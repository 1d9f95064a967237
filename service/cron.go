package service

import (
	"context"
	"fmt"
	"time"

	redislock "github.com/go-co-op/gocron-redis-lock/v2"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.lumeweb.com/provision/config"
	"go.lumeweb.com/provision/core"
	"go.uber.org/zap"
)

var _ core.CronService = (*CronServiceDefault)(nil)
var _ core.Service = (*CronServiceDefault)(nil)

type CronServiceDefault struct {
	ctx       context.Context
	logger    *core.Logger
	scheduler gocron.Scheduler
}

// NewCronService builds the scheduler. Jobs may be registered right away; they only
// begin to fire once the returned startup option has run.
func NewCronService(ctx core.Context) (*CronServiceDefault, []core.ContextBuilderOption, error) {
	scheduler, err := newScheduler(ctx.Config())
	if err != nil {
		return nil, nil, err
	}

	cron := &CronServiceDefault{
		ctx:       ctx,
		logger:    ctx.Logger(),
		scheduler: scheduler,
	}

	opts := core.ContextOptions(
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			return cron.Start()
		}),
		core.ContextWithExitFunc(func(ctx core.Context) error {
			return cron.Stop()
		}),
	)

	return cron, opts, nil
}

func newScheduler(cm config.Manager) (gocron.Scheduler, error) {
	if cm != nil && cm.Config() != nil && cm.Config().Core.Cron.Redis != nil {
		locker, err := redislock.NewRedisLocker(cm.Config().Core.Cron.Redis.Client(), redislock.WithTries(1), redislock.WithExpiry(time.Hour))
		if err != nil {
			return nil, err
		}

		return gocron.NewScheduler(gocron.WithDistributedLocker(locker))
	}

	return gocron.NewScheduler()
}

func (c *CronServiceDefault) ID() string {
	return core.CRON_SERVICE
}

func (c *CronServiceDefault) RegisterInterval(name string, interval time.Duration, fn core.CronTaskFunction) error {
	if interval <= 0 {
		return fmt.Errorf("cron job %s: interval must be positive", name)
	}

	task := gocron.NewTask(func() error {
		return fn(c.ctx)
	})

	listener := gocron.AfterJobRunsWithError(func(jobID uuid.UUID, jobName string, err error) {
		c.logger.Error("Job failed", zap.String("job", jobName), zap.String("id", jobID.String()), zap.Error(err))
	})

	_, err := c.scheduler.NewJob(
		gocron.DurationJob(interval),
		task,
		gocron.WithName(name),
		gocron.WithEventListeners(listener),
	)
	if err != nil {
		return err
	}

	return nil
}

func (c *CronServiceDefault) Start() error {
	c.scheduler.Start()
	return nil
}

func (c *CronServiceDefault) Stop() error {
	return c.scheduler.Shutdown()
}
