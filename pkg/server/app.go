package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	drepo "VolSentry/internal/domain/repository"
	"VolSentry/internal/services/settings"
	"VolSentry/internal/usecase"
	"VolSentry/pkg/config"
	xhttp "VolSentry/pkg/http"
	applogger "VolSentry/pkg/logger"
)

// App encapsulates the entire application lifecycle: the ingestion loop,
// the control loop and the HTTP surface.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	collector  *usecase.TradeCollector
	control    *usecase.ControlLoop
	notifier   drepo.Notifier
	settings   *settings.Settings
	publisher  drepo.AlertPublisher
	recorder   drepo.TradeRecorder
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. Publisher and
// recorder may be nil when their backends are disabled.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	collector *usecase.TradeCollector,
	control *usecase.ControlLoop,
	notifier drepo.Notifier,
	st *settings.Settings,
	publisher drepo.AlertPublisher,
	recorder drepo.TradeRecorder,
	httpHandler xhttp.Handler,
) *App {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	httpServer := xhttp.NewServer(httpHandler,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)
	return &App{
		cfg:        cfg,
		log:        log,
		collector:  collector,
		control:    control,
		notifier:   notifier,
		settings:   st,
		publisher:  publisher,
		recorder:   recorder,
		httpServer: httpServer,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.collector.Start(ctx); err != nil {
		a.log.Error("collector start failed", applogger.Error(err))
		return err
	}
	a.log.Info("collector started",
		applogger.String("symbol", a.cfg.Binance.Symbol),
		applogger.String("ws_url", a.cfg.Binance.WebSocketURL))

	a.control.Start(ctx)
	a.log.Info("control loop started",
		applogger.Duration("poll_interval", a.cfg.Telegram.PollInterval))

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	if err := a.notifier.Send(ctx, usecase.StartupMessage(a.cfg.Binance.Symbol, a.settings.Snapshot())); err != nil {
		a.log.Warn("startup message failed", applogger.Error(err))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	if err := a.collector.Shutdown(ctx); err != nil {
		a.log.Warn("collector stop error", applogger.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			a.log.Warn("trade archive close error", applogger.Error(err))
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("alert publisher close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
