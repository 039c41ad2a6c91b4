package di

import (
	"context"
	"fmt"
	"time"

	"VolSentry/internal/domain/models"
	"VolSentry/internal/domain/repository"
	"VolSentry/internal/handler/api"
	mid "VolSentry/internal/middleware"
	internalrepo "VolSentry/internal/repository"
	"VolSentry/internal/service/binance"
	"VolSentry/internal/service/telegram"
	"VolSentry/internal/services/analytics"
	"VolSentry/internal/services/settings"
	"VolSentry/internal/usecase"
	"VolSentry/pkg/cache"
	pkgch "VolSentry/pkg/clickhouse"
	"VolSentry/pkg/config"
	xhttp "VolSentry/pkg/http"
	pkgkafka "VolSentry/pkg/kafka"
	applogger "VolSentry/pkg/logger"
	"VolSentry/pkg/metrics"
	"VolSentry/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSettingsStore selects the persistence backend from config.
func ProvideSettingsStore(cfg *config.Config) (repository.SettingsStore, error) {
	if cfg.Store.Type == "redis" {
		kv, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Store.Redis.Host),
			cache.WithRedisPort(cfg.Store.Redis.Port),
			cache.WithRedisPassword(cfg.Store.Redis.Password),
			cache.WithRedisDB(cfg.Store.Redis.DB),
			cache.WithRedisPrefix(cfg.Store.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis settings store: %w", err)
		}
		return internalrepo.NewRedisSettingsStore(kv), nil
	}
	return internalrepo.NewFileSettingsStore(cfg.Store.File.Path), nil
}

// ProvideSettings loads the persisted snapshot, falling back to defaults
// when none exists or the store is unreadable.
func ProvideSettings(store repository.SettingsStore, log *applogger.Logger) *settings.Settings {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	saved, err := store.Load(ctx)
	if err != nil {
		log.Warn("settings load failed, using defaults", applogger.Error(err))
		return settings.New(models.DefaultSettings())
	}
	if saved == nil {
		return settings.New(models.DefaultSettings())
	}
	log.Info("settings restored",
		applogger.Float64("z_threshold", saved.ZThreshold),
		applogger.Float64("volume_threshold", saved.VolumeRatio),
		applogger.Int("alert_cooldown", saved.CooldownSeconds),
		applogger.Float64("whale_threshold", saved.WhaleThreshold))
	return settings.New(*saved)
}

// ProvideRollingBuffer creates the trade window.
func ProvideRollingBuffer(cfg *config.Config) *analytics.RollingBuffer {
	return analytics.NewRollingBuffer(cfg.Tracker.BufferSize)
}

// ProvideAlertEngine creates the alert decision engine.
func ProvideAlertEngine() *analytics.AlertEngine {
	return analytics.NewAlertEngine()
}

// ProvideMarketStream creates the Binance websocket stream.
func ProvideMarketStream(cfg *config.Config) repository.MarketStream {
	return binance.New(
		cfg.Binance.WebSocketURL,
		cfg.Binance.Symbol,
		cfg.Binance.ReconnectDelay,
		cfg.Binance.PingInterval,
	)
}

// ProvideTelegramClient creates the Telegram Bot API client.
func ProvideTelegramClient(cfg *config.Config) *telegram.Client {
	return telegram.New(
		cfg.Telegram.BotToken,
		cfg.Telegram.ChatID,
		cfg.Telegram.SendTimeout,
		cfg.Telegram.PollTimeout,
	)
}

// ProvideNotifier exposes the Telegram client as the notification sink.
func ProvideNotifier(tg *telegram.Client) repository.Notifier { return tg }

// ProvideCommandSource exposes the Telegram client as the command source.
func ProvideCommandSource(tg *telegram.Client) repository.CommandSource { return tg }

// ProvideAlertPublisher creates the Kafka alert publisher; empty brokers
// disable it.
func ProvideAlertPublisher(cfg *config.Config) (repository.AlertPublisher, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaAlertPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideTradeRecorder creates the ClickHouse trade archive when enabled.
func ProvideTradeRecorder(cfg *config.Config, log *applogger.Logger) (repository.TradeRecorder, error) {
	if !cfg.Archive.Enabled {
		return nil, nil
	}
	ch := cfg.Archive.ClickHouse
	client, err := pkgch.NewClient(
		pkgch.WithHost(ch.Host),
		pkgch.WithPort(ch.Port),
		pkgch.WithDatabase(ch.Database),
		pkgch.WithCredentials(ch.User, ch.Password),
		pkgch.WithTimeouts(ch.DialTimeout, ch.ReadTimeout, ch.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return internalrepo.NewClickHouseTradeArchive(client, log, internalrepo.ArchiveOptions{
		BatchSize:     cfg.Archive.BatchSize,
		FlushInterval: cfg.Archive.FlushInterval,
		QueueSize:     cfg.Archive.QueueSize,
	})
}

// ProvideTracker creates the per-trade processor.
func ProvideTracker(
	buffer *analytics.RollingBuffer,
	engine *analytics.AlertEngine,
	st *settings.Settings,
	notifier repository.Notifier,
	publisher repository.AlertPublisher,
	recorder repository.TradeRecorder,
	m repository.Metrics,
	log *applogger.Logger,
) *usecase.TradeTracker {
	return usecase.NewTradeTracker(buffer, engine, st, notifier, publisher, recorder, m, log)
}

// ProvideCollector wires the stream through the validating pipeline into
// the tracker.
func ProvideCollector(
	stream repository.MarketStream,
	tracker *usecase.TradeTracker,
	m repository.Metrics,
	log *applogger.Logger,
) *usecase.TradeCollector {
	pipe := mid.NewIngestPipeline(tracker, m)
	return usecase.NewTradeCollector(stream, pipe, m, log)
}

// ProvideCommandProcessor creates the operator command handler.
func ProvideCommandProcessor(
	st *settings.Settings,
	engine *analytics.AlertEngine,
	tracker *usecase.TradeTracker,
	store repository.SettingsStore,
	m repository.Metrics,
	log *applogger.Logger,
) *usecase.CommandProcessor {
	return usecase.NewCommandProcessor(st, engine, tracker, store, m, log)
}

// ProvideControlLoop creates the command polling loop.
func ProvideControlLoop(
	source repository.CommandSource,
	proc *usecase.CommandProcessor,
	notifier repository.Notifier,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.ControlLoop {
	return usecase.NewControlLoop(source, proc, notifier, m, log, cfg.Telegram.PollInterval)
}

// ProvideStatusHandler creates the HTTP status surface.
func ProvideStatusHandler(
	log *applogger.Logger,
	collector *usecase.TradeCollector,
	tracker *usecase.TradeTracker,
	st *settings.Settings,
	engine *analytics.AlertEngine,
	store repository.SettingsStore,
	cfg *config.Config,
) xhttp.Handler {
	return api.NewStatusHandler(log, collector, tracker, st, engine, store, cfg.Binance.Symbol)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	collector *usecase.TradeCollector,
	control *usecase.ControlLoop,
	notifier repository.Notifier,
	st *settings.Settings,
	publisher repository.AlertPublisher,
	recorder repository.TradeRecorder,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, log, collector, control, notifier, st, publisher, recorder, handler)
}
