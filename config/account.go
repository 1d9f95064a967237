package config

import (
	"errors"
	"time"
)

var _ Defaults = (*AccountConfig)(nil)
var _ Validator = (*AccountConfig)(nil)

type AccountConfig struct {
	ResetTokenTTL    time.Duration `mapstructure:"reset_token_ttl"`
	ResetPurgePeriod time.Duration `mapstructure:"reset_purge_period"`
}

func (a AccountConfig) Defaults() map[string]any {
	return map[string]any{
		"reset_token_ttl":    "1h",
		"reset_purge_period": "1h",
	}
}

func (a AccountConfig) Validate() error {
	if a.ResetTokenTTL <= 0 {
		return errors.New("core.account.reset_token_ttl must be positive")
	}
	if a.ResetPurgePeriod <= 0 {
		return errors.New("core.account.reset_purge_period must be positive")
	}

	return nil
}
