package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.lumeweb.com/provision/core"
)

func TestSettingsGetValue(t *testing.T) {
	settings := NewSettings(newTestConfig(t, nil))

	assert.Equal(t, "Shop Owner", settings.GetValue(core.SETTINGS_GENERAL_IDENTITY_NAME))
	assert.Equal(t, "owner@example.com", settings.GetValue(core.SETTINGS_GENERAL_IDENTITY_EMAIL))
	assert.Equal(t, "owner@example.com", settings.GetValue("/trans_email/ident_general/email/"))
	assert.Empty(t, settings.GetValue("trans_email/ident_sales/email"))
	assert.Empty(t, settings.GetValue(""))
}

func TestStoreManagerCurrentStore(t *testing.T) {
	stores := NewStoreManager(newTestConfig(t, nil))

	store := stores.CurrentStore()
	assert.Equal(t, uint(1), store.ID)
	assert.Equal(t, "default", store.Code)
	assert.Equal(t, "Main Store", store.Name)
	assert.Equal(t, uint(3), store.WebsiteID)
	assert.Equal(t, "https://shop.example.com/customer/account/resetPassword/", store.URL(core.ROUTE_RESET_PASSWORD))
}
