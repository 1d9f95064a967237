package main

import (
	"os"

	"go.lumeweb.com/provision"
	"go.lumeweb.com/provision/config"
	"go.lumeweb.com/provision/core"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.NewManager()
	logger := core.NewLogger(nil)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	err = cfg.Init()
	if err != nil {
		logger.Fatal("Failed to initialize config", zap.Error(err))
	}

	logger = core.NewLogger(cfg)

	ctx, err := core.NewContext(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create context", zap.Error(err))
	}

	provision.NewActiveProvisioner(ctx)

	err = provision.Init()
	if err != nil {
		logger.Error("Failed to initialize provisioner", zap.Error(err))
		os.Exit(core.ExitCodeFailedStartup)
	}

	err = provision.Start()
	if err != nil {
		logger.Error("Failed to start provisioner", zap.Error(err))
		os.Exit(core.ExitCodeFailedStartup)
	}

	trapSignals()

	err = provision.Serve()
	if err != nil {
		logger.Error("Failed to serve provisioner", zap.Error(err))
		os.Exit(core.ExitCodeFailedStartup)
	}

	// Shutdown exits the process once a signal arrives.
	select {}
}
