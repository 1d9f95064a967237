package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.lumeweb.com/httputil"
	"go.lumeweb.com/provision/core"
	"go.lumeweb.com/provision/middleware"
	"go.uber.org/zap"
)

var _ core.API = (*CustomerAPI)(nil)

const maxRequestBody = 1 << 16

type CustomerAPI struct {
	provisioning   core.ProvisioningService
	logger         *core.Logger
	allowedOrigins []string
}

// NewCustomerAPI builds the customer routes. With no allowedOrigins any origin may
// call them.
func NewCustomerAPI(provisioning core.ProvisioningService, logger *core.Logger, allowedOrigins ...string) *CustomerAPI {
	return &CustomerAPI{
		provisioning:   provisioning,
		logger:         logger,
		allowedOrigins: allowedOrigins,
	}
}

func (a *CustomerAPI) Name() string {
	return "customer"
}

func (a *CustomerAPI) Configure(router *mux.Router) error {
	corsMw := middleware.CorsMiddleware(&cors.Options{AllowedOrigins: a.allowedOrigins})

	customerApi := router.PathPrefix("/api/customer").Subrouter()
	customerApi.Use(corsMw)
	customerApi.HandleFunc("/check", a.checkCustomer).Methods(http.MethodPost, http.MethodOptions)

	return nil
}

func (a *CustomerAPI) checkCustomer(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var request CheckCustomerRequest

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&request)
	request.Email = strings.TrimSpace(request.Email)

	if err != nil || request.Email == "" {
		if err != nil {
			a.logger.Debug("invalid check request", zap.Error(err))
		}

		writeResult(w, r, http.StatusBadRequest, core.Result{Success: false, Message: messageEmailRequired})
		return
	}

	writeResult(w, r, http.StatusOK, a.provisioning.CheckCustomerByEmail(r.Context(), request.Email))
}

func writeResult(w http.ResponseWriter, r *http.Request, status int, result core.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	httputil.Context(r, w).Encode(result)
}
