package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MacroPulse/internal/domain/repository"
	"MacroPulse/internal/usecase"
	pkgcache "MacroPulse/pkg/cache"
	"MacroPulse/pkg/config"
	xhttp "MacroPulse/pkg/http"
	applogger "MacroPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg          *config.Config
	log          *applogger.Logger
	handler      xhttp.Handler
	outlook      *usecase.OutlookUsecase
	store        repository.SeriesStore
	publisher    repository.OutlookPublisher
	cacheBackend pkgcache.Service
	httpServer   *xhttp.Server
}

// New creates a new App instance with all dependencies. store, publisher
// and cacheBackend may be nil when the corresponding backend is disabled.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	handler xhttp.Handler,
	outlook *usecase.OutlookUsecase,
	store repository.SeriesStore,
	publisher repository.OutlookPublisher,
	cacheBackend pkgcache.Service,
) *App {
	if log == nil {
		log = applogger.Nop()
	}
	return &App{
		cfg:          cfg,
		log:          log,
		handler:      handler,
		outlook:      outlook,
		store:        store,
		publisher:    publisher,
		cacheBackend: cacheBackend,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithLogger(a.log),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)

	// Warm the snapshot cache so the first request does not pay for a full
	// collection, then keep it fresh on the cache TTL.
	go a.warmAndRefresh(ctx)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

func (a *App) warmAndRefresh(ctx context.Context) {
	if a.outlook == nil {
		return
	}

	if err := a.outlook.Refresh(ctx); err != nil {
		a.log.Warn("initial collection failed", applogger.Error(err))
	} else {
		a.log.Info("initial collection complete")
	}

	if !a.cfg.Cache.Enabled || a.cfg.Cache.TTL <= 0 {
		return
	}
	ticker := time.NewTicker(a.cfg.Cache.TTL)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.outlook.Refresh(ctx); err != nil {
				a.log.Warn("scheduled refresh failed", applogger.Error(err))
			}
		}
	}
}

// shutdown gracefully stops the HTTP server and closes infrastructure
// clients.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("store close error", applogger.Error(err))
		}
	}
	if a.cacheBackend != nil {
		if err := a.cacheBackend.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
