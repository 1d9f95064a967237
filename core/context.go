package core

import (
	"context"

	"github.com/gookit/event"
	"go.lumeweb.com/provision/config"
	"gorm.io/gorm"
)

type ContextBuilderOption func(Context) (Context, error)

type StartupFunc func(Context) error
type ExitFunc func(Context) error

// Context carries the process wide dependencies shared by every service: config,
// logger, database handle and the event manager. Request scoped work uses a plain
// context.Context instead.
type Context struct {
	context.Context
	services     map[string]Service
	cfg          config.Manager
	logger       *Logger
	exitFuncs    []func(Context) error
	exitCode     int
	startupFuncs []func(Context) error
	db           *gorm.DB
	cancel       context.CancelFunc
	event        *event.Manager
}

func NewContext(config config.Manager, logger *Logger, options ...ContextBuilderOption) (Context, error) {
	newCtx := Context{
		Context:  context.Background(),
		services: make(map[string]Service),
		cfg:      config,
		logger:   logger,
		event:    event.NewManager("provision"),
	}
	c, cancel := context.WithCancel(newCtx.Context)

	newCtx.Context = c
	newCtx.cancel = cancel

	var err error

	for _, opt := range options {
		newCtx, err = opt(newCtx)
		if err != nil {
			return newCtx, err
		}
	}

	return newCtx, nil
}

func (ctx *Context) Service(id string) Service {
	if svc, ok := ctx.services[id]; ok {
		return svc
	}

	return nil
}

func (ctx *Context) OnExit(f func(Context) error) {
	ctx.exitFuncs = append(ctx.exitFuncs, f)
}

func (ctx *Context) OnStartup(f func(Context) error) {
	ctx.startupFuncs = append(ctx.startupFuncs, f)
}

func (ctx *Context) StartupFuncs() []func(Context) error {
	return ctx.startupFuncs
}

func (ctx *Context) ExitFuncs() []func(Context) error {
	return ctx.exitFuncs
}

func (ctx *Context) DB() *gorm.DB {
	return ctx.db
}

func (ctx *Context) Logger() *Logger {
	return ctx.logger
}

func (ctx *Context) Config() config.Manager {
	return ctx.cfg
}

func (ctx *Context) Cancel() {
	ctx.cancel()
}

func (ctx *Context) ExitCode() int {
	return ctx.exitCode
}

func (ctx *Context) Event() *event.Manager {
	return ctx.event
}

func (ctx *Context) SetExitCode(code int) {
	ctx.exitCode = code
}

func ContextWithService(svc Service) ContextBuilderOption {
	return func(ctx Context) (Context, error) {
		ctx.services[svc.ID()] = svc
		return ctx, nil
	}
}

func ContextWithDB(db *gorm.DB) ContextBuilderOption {
	return func(ctx Context) (Context, error) {
		ctx.db = db
		return ctx, nil
	}
}

func ContextWithStartupFunc(f StartupFunc) ContextBuilderOption {
	return func(ctx Context) (Context, error) {
		ctx.OnStartup(f)
		return ctx, nil
	}
}

func ContextWithExitFunc(f ExitFunc) ContextBuilderOption {
	return func(ctx Context) (Context, error) {
		ctx.OnExit(f)
		return ctx, nil
	}
}

func ContextOptions(options ...ContextBuilderOption) []ContextBuilderOption {
	return options
}

// Apply runs late options, such as those returned by service constructors, against an
// existing context.
func (ctx Context) Apply(options ...ContextBuilderOption) (Context, error) {
	var err error

	for _, opt := range options {
		ctx, err = opt(ctx)
		if err != nil {
			return ctx, err
		}
	}

	return ctx, nil
}
