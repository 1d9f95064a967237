package config

import (
	"errors"
	"net/url"
)

var _ Defaults = (*StoreConfig)(nil)
var _ Validator = (*StoreConfig)(nil)

// StoreConfig describes the storefront new customers are attached to.
type StoreConfig struct {
	ID        uint   `mapstructure:"id"`
	Code      string `mapstructure:"code"`
	Name      string `mapstructure:"name"`
	WebsiteID uint   `mapstructure:"website_id"`
	BaseURL   string `mapstructure:"base_url"`
}

func (s StoreConfig) Defaults() map[string]any {
	return map[string]any{
		"id":         1,
		"code":       "default",
		"name":       "Default Store View",
		"website_id": 1,
	}
}

func (s StoreConfig) Validate() error {
	if s.WebsiteID == 0 {
		return errors.New("core.store.website_id is required")
	}
	if s.BaseURL == "" {
		return errors.New("core.store.base_url is required")
	}

	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("core.store.base_url must be an absolute url")
	}

	return nil
}
