package repository

import (
	"context"

	"VolSentry/internal/domain/models"
)

// MarketStream delivers trades from the exchange websocket.
type MarketStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Trade, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// Notifier delivers a rendered text message to the operator channel.
// Failures are non-fatal; callers never retry.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// CommandSource yields raw operator command lines, at-most-once each.
type CommandSource interface {
	Poll(ctx context.Context) ([]string, error)
}

// SettingsStore persists the tunables across restarts. Load returns
// (nil, nil) when no snapshot has been persisted yet.
type SettingsStore interface {
	Load(ctx context.Context) (*models.SettingsSnapshot, error)
	Persist(ctx context.Context, s models.SettingsSnapshot) error
}

// AlertPublisher fans fired alerts out to downstream consumers.
type AlertPublisher interface {
	Publish(ctx context.Context, ev *models.AlertEvent) error
	Close() error
}

// TradeRecorder archives raw trades. Record never blocks the caller.
type TradeRecorder interface {
	Record(t *models.Trade)
	Close() error
}

// Metrics abstracts operational metric recording.
type Metrics interface {
	RecordTrade(symbol string, price float64)
	RecordAlert(kind string)
	RecordCommand(cmd string)
	RecordError(kind string)
	RecordZScore(v float64)
	RecordLatency(op string, seconds float64)
}
