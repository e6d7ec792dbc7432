package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/document-management-api/internal/router"
	"github.com/yukikurage/document-management-api/internal/tracing"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server and the trash purge scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, logger, cfg.OTelServiceName, cfg.Environment)
	if err != nil {
		logger.Warn("failed to initialize tracing", slog.String("error", err.Error()))
		shutdownTracing = func(context.Context) error { return nil }
	}

	db, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}

	app, err := router.New(cfg, db, logger)
	if err != nil {
		return err
	}
	if err := app.BootstrapAdmin(logger); err != nil {
		return err
	}

	workerDone := make(chan error, 1)
	go func() {
		workerDone <- app.PurgeWorker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			stop()
			return err
		}
	case err := <-workerDone:
		if err != nil {
			logger.Error("trash purge worker failed", slog.String("error", err.Error()))
			runErr = fmt.Errorf("trash purge worker: %w", err)
		} else {
			logger.Warn("trash purge worker exited")
		}
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.String("error", err.Error()))
	}
	stop()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown failed", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
	return runErr
}
