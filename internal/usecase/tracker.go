package usecase

import (
	"context"
	"fmt"
	"time"

	"VolSentry/internal/domain/models"
	drepo "VolSentry/internal/domain/repository"
	"VolSentry/internal/services/analytics"
	"VolSentry/internal/services/settings"
	"VolSentry/pkg/logger"
)

const heartbeatInterval = 30 * time.Second

// TradeTracker is the ingestion-side processor: every validated trade is
// appended to the rolling window, metrics are recomputed, and the alert
// engine decides whether to notify. It runs on a single goroutine (the
// collector's consume loop), so the buffer needs no locking.
type TradeTracker struct {
	buffer   *analytics.RollingBuffer
	engine   *analytics.AlertEngine
	settings *settings.Settings
	notifier drepo.Notifier
	pub      drepo.AlertPublisher
	recorder drepo.TradeRecorder
	metrics  drepo.Metrics
	log      *logger.Logger

	startedAt     time.Time
	lastHeartbeat time.Time
}

// NewTradeTracker creates a tracker. Publisher and recorder may be nil when
// the corresponding backends are disabled.
func NewTradeTracker(
	buffer *analytics.RollingBuffer,
	engine *analytics.AlertEngine,
	st *settings.Settings,
	notifier drepo.Notifier,
	pub drepo.AlertPublisher,
	recorder drepo.TradeRecorder,
	metrics drepo.Metrics,
	log *logger.Logger,
) *TradeTracker {
	now := time.Now()
	return &TradeTracker{
		buffer:        buffer,
		engine:        engine,
		settings:      st,
		notifier:      notifier,
		pub:           pub,
		recorder:      recorder,
		metrics:       metrics,
		log:           log,
		startedAt:     now,
		lastHeartbeat: now,
	}
}

// StartedAt returns the tracker start time, used for uptime reporting.
func (p *TradeTracker) StartedAt() time.Time { return p.startedAt }

// Process runs the full per-trade path: observe, append, compute, decide,
// notify. Notification failures are logged but never propagate; the alert
// is spent either way.
func (p *TradeTracker) Process(ctx context.Context, t *models.Trade) error {
	if t == nil {
		return fmt.Errorf("trade is nil")
	}
	start := time.Now()

	p.metrics.RecordTrade(t.Symbol, t.Price)
	p.engine.Observe(t.Price)
	p.buffer.Append(*t)

	if p.recorder != nil {
		p.recorder.Record(t)
	}

	st := p.settings.Snapshot()
	snap := analytics.Compute(p.buffer, st.WhaleThreshold)
	if snap != nil {
		p.metrics.RecordZScore(snap.ZScore)
		if ev := p.engine.Decide(snap, st); ev != nil {
			p.dispatch(ctx, ev)
		}
	}

	p.heartbeat(t)
	p.metrics.RecordLatency("process", time.Since(start).Seconds())
	return nil
}

func (p *TradeTracker) dispatch(ctx context.Context, ev *models.AlertEvent) {
	p.metrics.RecordAlert(string(ev.Kind))
	p.log.Info("alert fired",
		logger.String("kind", string(ev.Kind)),
		logger.Int64("seq", ev.Seq),
		logger.Float64("z_score", ev.Snapshot.ZScore),
		logger.Float64("recent_volume", ev.Snapshot.RecentVolume))

	if err := p.notifier.Send(ctx, renderAlert(ev)); err != nil {
		p.metrics.RecordError("notify")
		p.log.Error("alert notification failed", logger.Error(err))
	}
	if p.pub != nil {
		if err := p.pub.Publish(ctx, ev); err != nil {
			p.metrics.RecordError("publish")
			p.log.Error("alert publish failed", logger.Error(err))
		}
	}
}

// heartbeat logs a price/volume line at most once per interval, keyed on
// wall time rather than trade frequency.
func (p *TradeTracker) heartbeat(t *models.Trade) {
	now := time.Now()
	if now.Sub(p.lastHeartbeat) < heartbeatInterval {
		return
	}
	p.lastHeartbeat = now
	p.log.Info("heartbeat",
		logger.String("symbol", t.Symbol),
		logger.Float64("price", t.Price),
		logger.Float64("volume", t.Notional()),
		logger.Int("buffer_len", p.buffer.Len()))
}
