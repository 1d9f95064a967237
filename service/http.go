package service

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.lumeweb.com/provision/core"
	"go.uber.org/zap"
)

var _ core.HTTPService = (*HTTPServiceDefault)(nil)

const shutdownTimeout = 10 * time.Second

type HTTPServiceDefault struct {
	ctx    core.Context
	logger *core.Logger
	router *mux.Router
	srv    *http.Server
	apis   []core.API
}

var _ handlers.RecoveryHandlerLogger = (*recoverLogger)(nil)

type recoverLogger struct {
	logger *core.Logger
}

func (r *recoverLogger) Println(v ...interface{}) {
	r.logger.Error("Recovered from panic", zap.Any("panic", v))
}

func NewHTTPService(ctx core.Context, apis ...core.API) (*HTTPServiceDefault, []core.ContextBuilderOption, error) {
	_http := &HTTPServiceDefault{
		ctx:    ctx,
		logger: ctx.Logger(),
		router: mux.NewRouter(),
		apis:   apis,
	}

	srv := &http.Server{}

	opts := core.ContextOptions(
		core.ContextWithExitFunc(func(ctx core.Context) error {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			return srv.Shutdown(shutdownCtx)
		}),
	)

	_http.srv = srv

	return _http, opts, nil
}

func (h *HTTPServiceDefault) ID() string {
	return core.HTTP_SERVICE
}

func (h *HTTPServiceDefault) Router() *mux.Router {
	return h.router
}

func (h *HTTPServiceDefault) Init() error {
	h.router.Use(handlers.RecoveryHandler(handlers.RecoveryLogger(&recoverLogger{h.logger})))

	for _, api := range h.apis {
		if err := api.Configure(h.router); err != nil {
			return err
		}
		h.logger.Debug("api configured", zap.String("api", api.Name()))
	}

	accessLog := zap.NewStdLog(h.logger.Named("http")).Writer()

	h.srv.Handler = handlers.CombinedLoggingHandler(accessLog, h.router)
	h.srv.Addr = ":" + strconv.FormatUint(uint64(h.ctx.Config().Config().Core.Port), 10)

	return nil
}

func (h *HTTPServiceDefault) Serve() error {
	ln, err := net.Listen("tcp", h.srv.Addr)
	if err != nil {
		return err
	}

	h.logger.Info("http server listening", zap.String("addr", ln.Addr().String()))

	go func() {
		err := h.srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("Failed to serve", zap.Error(err))
		}
	}()

	return nil
}
