package core

import (
	"github.com/gorilla/mux"
)

const HTTP_SERVICE = "http"

type HTTPService interface {
	Router() *mux.Router
	Init() error
	Serve() error

	Service
}

// API mounts a group of routes on the shared router.
type API interface {
	Name() string
	Configure(router *mux.Router) error
}
