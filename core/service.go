package core

import "fmt"

type Service interface {
	ID() string
}

// GetService returns the service registered under id, panicking when it is missing
// or of another type. Lookups happen during wiring, where a missing service is a
// programming error.
func GetService[T any](ctx Context, id string) T {
	svc := ctx.Service(id)
	if svc == nil {
		panic(fmt.Sprintf("service %s not found", id))
	}

	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("service %s is not of the expected type", id))
	}

	return typed
}
