package core

import (
	"net/url"
	"strings"
)

const (
	SETTINGS_SERVICE = "settings"
	STORE_MANAGER    = "store"
)

const (
	SETTINGS_GENERAL_IDENTITY_NAME  = "trans_email/ident_general/name"
	SETTINGS_GENERAL_IDENTITY_EMAIL = "trans_email/ident_general/email"
)

const ROUTE_RESET_PASSWORD = "customer/account/resetPassword"

// Settings reads scalar configuration by slash separated path.
type Settings interface {
	GetValue(key string) string
}

type Store struct {
	ID        uint
	Code      string
	Name      string
	WebsiteID uint
	BaseURL   string
}

// URL resolves a storefront route against the store base URL.
func (s Store) URL(route string) string {
	return strings.TrimSuffix(s.BaseURL, "/") + "/" + strings.Trim(route, "/") + "/"
}

// ResetPasswordURL is the storefront link that redeems a reset token.
func (s Store) ResetPasswordURL(token string) string {
	return s.URL(ROUTE_RESET_PASSWORD) + "?" + url.Values{"token": {token}}.Encode()
}

type StoreManager interface {
	CurrentStore() Store
}
