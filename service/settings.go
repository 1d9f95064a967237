package service

import (
	"strings"

	"go.lumeweb.com/provision/config"
	"go.lumeweb.com/provision/core"
)

var _ core.Settings = (*SettingsDefault)(nil)
var _ core.Service = (*SettingsDefault)(nil)

const settingsRoot = "core"

// SettingsDefault resolves slash separated paths such as trans_email/ident_general/name
// against the core section of the config tree.
type SettingsDefault struct {
	config config.Manager
}

func NewSettings(cm config.Manager) *SettingsDefault {
	return &SettingsDefault{config: cm}
}

func (s *SettingsDefault) ID() string {
	return core.SETTINGS_SERVICE
}

func (s *SettingsDefault) GetValue(key string) string {
	key = strings.Trim(key, "/")
	if key == "" {
		return ""
	}

	return s.config.String(settingsRoot + "." + strings.ReplaceAll(key, "/", "."))
}
