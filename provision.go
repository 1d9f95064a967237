package provision

import (
	"errors"
	"os"
	"sync"

	"go.lumeweb.com/provision/api"
	"go.lumeweb.com/provision/core"
	"go.lumeweb.com/provision/db"
	"go.lumeweb.com/provision/service"
	"go.uber.org/zap"
)

var (
	activeProvisioner Provisioner
)

type Provisioner interface {
	Init() error
	Start() error
	Stop() error
	Context() core.Context
	Serve() error
}

type ProvisionerImpl struct {
	ctx   core.Context
	ctxMu sync.RWMutex
}

// Init opens the database and wires every service by hand. Nothing runs until Start.
func (p *ProvisionerImpl) Init() error {
	ctx := p.Context()

	ctx.Logger().Info("Initializing provisioner")

	_, ctxOpts, err := db.NewDatabase(ctx.Config(), ctx.Logger())
	if err != nil {
		ctx.Logger().Error("Error opening database", zap.Error(err))
		return err
	}

	ctx, err = core.NewContext(ctx.Config(), ctx.Logger(), ctxOpts...)
	if err != nil {
		ctx.Logger().Error("Error creating context", zap.Error(err))
		return err
	}

	opts, err := p.initServices(ctx)
	if err != nil {
		return err
	}

	ctx, err = ctx.Apply(opts...)
	if err != nil {
		ctx.Logger().Error("Error creating context", zap.Error(err))
		return err
	}

	p.SetContext(ctx)

	return nil
}

func (p *ProvisionerImpl) initServices(ctx core.Context) (ctxOpts []core.ContextBuilderOption, err error) {
	directory := service.NewCustomerDirectory(ctx)
	accounts := service.NewAccountManager(ctx)
	settings := service.NewSettings(ctx.Config())
	stores := service.NewStoreManager(ctx.Config())

	mailer, opts, err := service.NewMailer(ctx)
	if err != nil {
		ctx.Logger().Error("Error creating service", zap.String("service", core.MAILER_SERVICE), zap.Error(err))
		return nil, err
	}
	ctxOpts = append(ctxOpts, opts...)

	provisioning := service.NewProvisioningService(directory, accounts, mailer, settings, stores, ctx.Logger())

	cron, opts, err := service.NewCronService(ctx)
	if err != nil {
		ctx.Logger().Error("Error creating service", zap.String("service", core.CRON_SERVICE), zap.Error(err))
		return nil, err
	}
	ctxOpts = append(ctxOpts, opts...)

	for _, svc := range []core.Service{directory, accounts, settings, stores, mailer, provisioning, cron} {
		if cronable, ok := svc.(core.Cronable); ok {
			if err := cronable.ScheduleJobs(cron); err != nil {
				ctx.Logger().Error("Failed to schedule jobs for service", zap.String("service", svc.ID()), zap.Error(err))
				return nil, err
			}
		}
	}

	httpSvc, opts, err := service.NewHTTPService(ctx, api.NewCustomerAPI(provisioning, ctx.Logger(), ctx.Config().Config().Core.AllowedOrigins...))
	if err != nil {
		ctx.Logger().Error("Error creating service", zap.String("service", core.HTTP_SERVICE), zap.Error(err))
		return nil, err
	}
	ctxOpts = append(ctxOpts, opts...)

	for _, svc := range []core.Service{directory, accounts, settings, stores, mailer, provisioning, cron, httpSvc} {
		ctxOpts = append(ctxOpts, core.ContextWithService(svc))
	}

	return ctxOpts, nil
}

func (p *ProvisionerImpl) Start() error {
	ctx := p.Context()
	ctx.Logger().Info("Starting provisioner")

	if err := p.startStartupFuncs(ctx); err != nil {
		return err
	}

	if err := p.startHTTP(ctx); err != nil {
		return err
	}

	return nil
}

func (p *ProvisionerImpl) Stop() error {
	ctx := p.Context()
	ctx.Logger().Info("Stopping provisioner")

	return p.runExitFuncs(ctx)
}

func (p *ProvisionerImpl) Serve() error {
	ctx := p.Context()
	ctx.Logger().Info("Serving provisioner")

	httpSvc := ctx.Service(core.HTTP_SERVICE)

	if httpSvc == nil {
		ctx.Logger().Error("HTTP service not found")
		return errors.New("http service not found")
	}

	return httpSvc.(core.HTTPService).Serve()
}

func (p *ProvisionerImpl) startStartupFuncs(ctx core.Context) error {
	for _, startupFunc := range ctx.StartupFuncs() {
		if err := startupFunc(ctx); err != nil {
			ctx.Logger().Error("Error starting provisioner", zap.Error(err))
			return err
		}
	}

	return nil
}

func (p *ProvisionerImpl) startHTTP(ctx core.Context) error {
	return core.GetService[core.HTTPService](ctx, core.HTTP_SERVICE).Init()
}

// runExitFuncs runs exit funcs newest first, so the HTTP server stops before the
// database it depends on is closed.
func (p *ProvisionerImpl) runExitFuncs(ctx core.Context) error {
	var errs []error

	exitFuncs := ctx.ExitFuncs()
	for i := len(exitFuncs) - 1; i >= 0; i-- {
		if err := exitFuncs[i](ctx); err != nil {
			ctx.Logger().Error("Error stopping provisioner", zap.Error(err))
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func NewProvisioner(ctx core.Context) *ProvisionerImpl {
	return &ProvisionerImpl{
		ctx: ctx,
	}
}

func (p *ProvisionerImpl) Context() core.Context {
	p.ctxMu.RLock()
	defer p.ctxMu.RUnlock()
	return p.ctx
}

func (p *ProvisionerImpl) SetContext(ctx core.Context) {
	p.ctxMu.Lock()
	defer p.ctxMu.Unlock()
	p.ctx = ctx
}

func NewActiveProvisioner(ctx core.Context) {
	activeProvisioner = NewProvisioner(ctx)
}

func Start() error {
	return activeProvisioner.Start()
}

func Init() error {
	return activeProvisioner.Init()
}

func Stop() error {
	return activeProvisioner.Stop()
}

func Serve() error {
	return activeProvisioner.Serve()
}

func Context() core.Context {
	return activeProvisioner.Context()
}

func ActiveProvisioner() Provisioner {
	return activeProvisioner
}

func Shutdown(activeProvisioner Provisioner, logger *zap.Logger) {
	ctx := activeProvisioner.Context()

	if logger == nil {
		logger = ctx.Logger().Logger
	}

	ctx.Cancel()

	<-ctx.Done()

	if err := activeProvisioner.Stop(); err != nil {
		logger.Error("Failed to stop provisioner", zap.Error(err))
		ctx.SetExitCode(core.ExitCodeFailedQuit)
	}

	os.Exit(ctx.ExitCode())
}
