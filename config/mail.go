package config

import "errors"

var _ Defaults = (*MailConfig)(nil)
var _ Validator = (*MailConfig)(nil)

type MailDriver string

const (
	MailDriverSMTP   MailDriver = "smtp"
	MailDriverResend MailDriver = "resend"
)

type MailConfig struct {
	Driver   MailDriver `mapstructure:"driver"`
	Host     string     `mapstructure:"host"`
	Port     int        `mapstructure:"port"`
	SSL      bool       `mapstructure:"ssl"`
	AuthType string     `mapstructure:"auth_type"`
	Username string     `mapstructure:"username"`
	Password string     `mapstructure:"password"`
	APIKey   string     `mapstructure:"api_key"`
}

func (m MailConfig) Defaults() map[string]any {
	return map[string]any{
		"driver": string(MailDriverSMTP),
	}
}

func (m MailConfig) Validate() error {
	switch m.Driver {
	case MailDriverSMTP:
		if m.Host == "" {
			return errors.New("core.mail.host is required")
		}
		if m.AuthType != "" {
			if m.Username == "" {
				return errors.New("core.mail.username is required")
			}
			if m.Password == "" {
				return errors.New("core.mail.password is required")
			}
		}
	case MailDriverResend:
		if m.APIKey == "" {
			return errors.New("core.mail.api_key is required")
		}
	default:
		return errors.New("core.mail.driver must be one of: smtp, resend")
	}

	return nil
}
