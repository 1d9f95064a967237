package config

// CronConfig controls the job scheduler. With Redis set, jobs take a distributed
// lock first so only one replica runs each tick.
type CronConfig struct {
	Redis *RedisConfig `mapstructure:"redis"`
}
