package middleware

import (
	"context"
	"fmt"
	"time"

	"VolSentry/internal/domain/models"
	domrepo "VolSentry/internal/domain/repository"
)

// Proc is the minimal processor interface the pipeline needs.
type Proc interface {
	Process(ctx context.Context, t *models.Trade) error
}

// IngestPipeline sits between the websocket stream and the tracker. It
// validates every trade before the tracker sees it; malformed frames are
// counted and skipped without disturbing the rolling window.
type IngestPipeline struct {
	proc    Proc
	metrics domrepo.Metrics
}

// NewIngestPipeline creates a new pipeline.
func NewIngestPipeline(proc Proc, metrics domrepo.Metrics) *IngestPipeline {
	return &IngestPipeline{proc: proc, metrics: metrics}
}

// Process validates and forwards one trade to the tracker.
func (p *IngestPipeline) Process(ctx context.Context, t *models.Trade) error {
	start := time.Now()
	if err := validateTrade(t); err != nil {
		p.metrics.RecordError("pipeline_validate")
		return err
	}
	if err := p.proc.Process(ctx, t); err != nil {
		p.metrics.RecordError("pipeline_process")
		return fmt.Errorf("pipeline downstream: %w", err)
	}
	p.metrics.RecordLatency("pipeline_process", time.Since(start).Seconds())
	return nil
}

func validateTrade(t *models.Trade) error {
	if t == nil {
		return fmt.Errorf("trade nil")
	}
	if t.Symbol == "" {
		return fmt.Errorf("symbol empty")
	}
	if t.Timestamp <= 0 {
		return fmt.Errorf("timestamp invalid")
	}
	if t.Price <= 0 || t.Quantity <= 0 {
		return fmt.Errorf("non-positive price/quantity")
	}
	return nil
}
