package config

import (
	"errors"
)

var _ Defaults = (*CoreConfig)(nil)
var _ Validator = (*CoreConfig)(nil)

type CoreConfig struct {
	DB             DatabaseConfig   `mapstructure:"db"`
	Log            LogConfig        `mapstructure:"log"`
	Mail           MailConfig       `mapstructure:"mail"`
	Store          StoreConfig      `mapstructure:"store"`
	TransEmail     TransEmailConfig `mapstructure:"trans_email"`
	Account        AccountConfig    `mapstructure:"account"`
	Cron           CronConfig       `mapstructure:"cron"`
	Port           uint             `mapstructure:"port"`
	AllowedOrigins []string         `mapstructure:"allowed_origins"`
}

func (c CoreConfig) Validate() error {
	if c.Port == 0 {
		return errors.New("core.port is required")
	}

	return nil
}

func (c CoreConfig) Defaults() map[string]any {
	return map[string]any{
		"port": 8080,
	}
}
