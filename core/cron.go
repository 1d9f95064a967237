package core

import (
	"context"
	"time"
)

const CRON_SERVICE = "cron"

type CronTaskFunction func(ctx context.Context) error

type CronService interface {
	// RegisterInterval schedules fn to run every interval once the scheduler starts.
	RegisterInterval(name string, interval time.Duration, fn CronTaskFunction) error
	Start() error
	Stop() error
}

// Cronable is implemented by services that own recurring jobs.
type Cronable interface {
	ScheduleJobs(cron CronService) error
}
