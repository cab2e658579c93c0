package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itchan-dev/shopkeeper/backend/internal/router"
	"github.com/itchan-dev/shopkeeper/backend/internal/setup"
	"github.com/itchan-dev/shopkeeper/shared/config"
	"github.com/itchan-dev/shopkeeper/shared/logger"
	"github.com/itchan-dev/shopkeeper/shared/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)
	utils.ExposeErrorDetails(!cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Log.Error("server failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	deps, err := setup.SetupDependencies(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := deps.Storage.Cleanup(); err != nil {
			logger.Log.Error("failed to close storage", "error", err)
		}
	}()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Public.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := &http.Server{
		Handler:           router.New(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Log.Info("server started", "addr", ln.Addr().String(), "env", cfg.Public.Env)
	return serve(ctx, srv, ln)
}

// serve runs srv on ln until ctx is done, then shuts it down gracefully.
// It returns the server error if serving stops on its own.
func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Log.Info("server stopped")
	return nil
}
