package main

import (
	"os"
	"os/signal"
	"syscall"

	"go.lumeweb.com/provision"
	"go.lumeweb.com/provision/core"
	"go.uber.org/zap"
)

// exitProcessFromSignal exits the process from a system signal.
func exitProcessFromSignal(sigName string) {
	ctx := provision.Context()
	logger := ctx.Logger().With(zap.String("signal", sigName))
	provision.Shutdown(provision.ActiveProvisioner(), logger)
}

func trapSignals() {
	ctx := provision.Context()
	logger := ctx.Logger()
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

		for sig := range sigchan {
			switch sig {
			case syscall.SIGQUIT:
				logger.Info("quitting process immediately", zap.String("signal", "SIGQUIT"))
				os.Exit(core.ExitCodeForceQuit)

			case syscall.SIGINT:
				logger.Info("shutting down, then terminating", zap.String("signal", "SIGINT"))
				exitProcessFromSignal("SIGINT")

			case syscall.SIGTERM:
				logger.Info("shutting down, then terminating", zap.String("signal", "SIGTERM"))
				exitProcessFromSignal("SIGTERM")

			case syscall.SIGHUP:
				// ignore; this signal is sometimes sent outside of the user's control
				logger.Info("not implemented", zap.String("signal", "SIGHUP"))
			}
		}
	}()
}
