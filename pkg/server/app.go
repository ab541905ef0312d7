package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	drepo "CandleCache/internal/domain/repository"
	"CandleCache/internal/usecase"
	pkgch "CandleCache/pkg/clickhouse"
	"CandleCache/pkg/config"
	xhttp "CandleCache/pkg/http"
	applogger "CandleCache/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	httpHandler xhttp.Handler
	httpServer  *xhttp.Server
	store       drepo.CandleStore
	janitor     *usecase.Janitor
	publisher   drepo.Publisher
	chClient    *pkgch.Client
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	store drepo.CandleStore,
	janitor *usecase.Janitor,
	publisher drepo.Publisher,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:         cfg,
		logger:      logger,
		httpHandler: handler,
		store:       store,
		janitor:     janitor,
		publisher:   publisher,
		chClient:    chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.httpHandler, a.logger,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.janitor != nil {
		if err := a.janitor.Start(); err != nil {
			a.logger.Error("janitor start error", applogger.Error(err))
			return err
		}
		a.logger.Info("janitor started", applogger.String("schedule", a.cfg.Janitor.Schedule))
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("serving candles",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("cache_backend", a.cfg.Cache.Backend),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	if a.janitor != nil {
		a.janitor.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("store close error", applogger.Error(err))
	}

	a.logger.Info("shutdown complete")
	return nil
}
