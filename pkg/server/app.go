package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"PredVal/internal/usecase"
	pkgcache "PredVal/pkg/cache"
	pkgch "PredVal/pkg/clickhouse"
	"PredVal/pkg/config"
	xhttp "PredVal/pkg/http"
	applogger "PredVal/pkg/logger"
	"PredVal/pkg/metrics"
)

// App encapsulates the application lifecycle in batch and serve mode.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	recorder    *metrics.Recorder
	reports     *usecase.ReportUseCase
	httpHandler xhttp.Handler
	chClient    *pkgch.Client    // optional
	cache       pkgcache.Service // optional
	httpServer  *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	recorder *metrics.Recorder,
	reports *usecase.ReportUseCase,
	httpHandler xhttp.Handler,
	chClient *pkgch.Client,
	cache pkgcache.Service,
) *App {
	return &App{
		cfg:         cfg,
		logger:      logger,
		recorder:    recorder,
		reports:     reports,
		httpHandler: httpHandler,
		chClient:    chClient,
		cache:       cache,
	}
}

// Run executes one batch validation from the configured files and pushes
// metrics when a push gateway is configured.
func (a *App) Run(ctx context.Context) error {
	if err := a.cfg.ValidateBatch(); err != nil {
		return err
	}
	policy, err := usecase.ParseEmptyWindowPolicy(a.cfg.Pipeline.EmptyWindowPolicy)
	if err != nil {
		return err
	}

	a.logger.Info("batch run started",
		applogger.String("backend", a.cfg.Backend.Type),
		applogger.String("policy", string(policy)),
	)

	_, runErr := a.reports.Run(ctx, usecase.RunParams{
		WindowFile:    a.cfg.Input.WindowFile,
		ActualFile:    a.cfg.Input.ActualFile,
		PredictedFile: a.cfg.Input.PredictedFile,
		OutputFile:    a.cfg.Output.Path,
		Policy:        policy,
	})
	if runErr != nil {
		a.logger.Error("batch run failed", applogger.Error(runErr))
	}

	// Failed runs are pushed too so the error counters reach the gateway.
	a.pushMetrics(ctx)
	return runErr
}

func (a *App) pushMetrics(ctx context.Context) {
	if !a.cfg.Metrics.Enabled || a.recorder == nil {
		return
	}
	if err := a.recorder.Push(ctx, a.cfg.Metrics.PushGatewayURL, a.cfg.Metrics.Job); err != nil {
		a.logger.Warn("metrics push failed", applogger.Error(err))
	}
}

// Serve starts the HTTP API and blocks until ctx is done, a termination
// signal arrives or the listener fails.
func (a *App) Serve(ctx context.Context) error {
	opts := []xhttp.ServerOption{
		xhttp.WithListen("", a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithBodyLimit(a.cfg.Server.BodyLimit),
		xhttp.WithLogger(a.logger),
	}
	if a.recorder != nil {
		opts = append(opts, xhttp.WithRegistry(a.recorder.Registry()))
	}
	a.httpServer = xhttp.NewServer(a.httpHandler, opts...)

	if err := a.httpServer.Start(); err != nil {
		return fmt.Errorf("http server start: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var serveErr error
	select {
	case <-sigCh:
		a.logger.Info("shutdown signal received")
	case <-ctx.Done():
		a.logger.Info("context cancelled, shutting down")
	case serveErr = <-a.httpServer.Errors():
		a.logger.Error("http server error", applogger.Error(serveErr))
	}

	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}
	return serveErr
}

// Close releases backends and infrastructure clients.
func (a *App) Close() {
	if a.reports != nil {
		a.reports.Close()
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("redis close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	a.logger.Info("shutdown complete")
}
