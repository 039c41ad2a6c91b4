package usecase

import (
	"context"

	"VolSentry/internal/domain/models"
	drepo "VolSentry/internal/domain/repository"
	mid "VolSentry/internal/middleware"
	"VolSentry/pkg/logger"
)

// TradeCollector collects trades from the market stream and feeds them
// through the ingest pipeline.
type TradeCollector struct {
	stream  drepo.MarketStream
	pipe    *mid.IngestPipeline
	metrics drepo.Metrics
	log     *logger.Logger
}

// NewTradeCollector creates a new TradeCollector instance.
func NewTradeCollector(stream drepo.MarketStream, pipe *mid.IngestPipeline, metrics drepo.Metrics, log *logger.Logger) *TradeCollector {
	return &TradeCollector{stream: stream, pipe: pipe, metrics: metrics, log: log}
}

// IsConnected returns true if the market stream is connected.
func (c *TradeCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

// Start connects, subscribes and launches the consume loop. The loop owns
// the rolling window for the life of the process.
func (c *TradeCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	trCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, trCh, errCh)
	return nil
}

func (c *TradeCollector) consume(ctx context.Context, trCh <-chan *models.Trade, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err == nil {
				continue
			}
			c.metrics.RecordError("stream")
			c.log.Warn("stream error, reconnecting", logger.Error(err))
			// a read error ends the stream's channels, so reconnect and
			// re-acquire them; Reconnect itself throttles the retries
			for {
				if rerr := c.stream.Reconnect(ctx); rerr != nil {
					if ctx.Err() != nil {
						return
					}
					c.log.Error("reconnect failed", logger.Error(rerr))
					continue
				}
				break
			}
			trCh, errCh = c.stream.Read(ctx)
		case t, ok := <-trCh:
			if !ok {
				trCh = nil
				continue
			}
			if t == nil {
				continue
			}
			// malformed trades are counted inside the pipeline
			_ = c.pipe.Process(ctx, t)
		}
	}
}

// Shutdown closes the stream.
func (c *TradeCollector) Shutdown(ctx context.Context) error {
	return c.stream.Close()
}
