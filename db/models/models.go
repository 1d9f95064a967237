package models

import "sync"

var (
	registered   []any
	registeredMu sync.Mutex
)

func registerModel(model any) {
	registeredMu.Lock()
	defer registeredMu.Unlock()

	registered = append(registered, model)
}

// GetModels returns every model that takes part in auto migration.
func GetModels() []any {
	registeredMu.Lock()
	defer registeredMu.Unlock()

	models := make([]any, len(registered))
	copy(models, registered)

	return models
}
