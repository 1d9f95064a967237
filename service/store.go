package service

import (
	"go.lumeweb.com/provision/config"
	"go.lumeweb.com/provision/core"
)

var _ core.StoreManager = (*StoreManagerDefault)(nil)
var _ core.Service = (*StoreManagerDefault)(nil)

type StoreManagerDefault struct {
	config config.Manager
}

func NewStoreManager(cm config.Manager) *StoreManagerDefault {
	return &StoreManagerDefault{config: cm}
}

func (s *StoreManagerDefault) ID() string {
	return core.STORE_MANAGER
}

func (s *StoreManagerDefault) CurrentStore() core.Store {
	store := s.config.Config().Core.Store

	return core.Store{
		ID:        store.ID,
		Code:      store.Code,
		Name:      store.Name,
		WebsiteID: store.WebsiteID,
		BaseURL:   store.BaseURL,
	}
}
