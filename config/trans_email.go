package config

import "errors"

var _ Validator = (*TransEmailConfig)(nil)

// TransEmailConfig holds the sender identities used for transactional mail.
type TransEmailConfig struct {
	IdentGeneral IdentityConfig `mapstructure:"ident_general"`
	IdentSupport IdentityConfig `mapstructure:"ident_support"`
}

type IdentityConfig struct {
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
}

func (t TransEmailConfig) Validate() error {
	if t.IdentGeneral.Email == "" {
		return errors.New("core.trans_email.ident_general.email is required")
	}

	return nil
}
