package middleware

import (
	"context"
	"testing"

	"VolSentry/internal/domain/models"
)

type countingProc struct {
	n int
}

func (p *countingProc) Process(ctx context.Context, t *models.Trade) error {
	p.n++
	return nil
}

type nopMetrics struct{}

func (nopMetrics) RecordTrade(string, float64)   {}
func (nopMetrics) RecordAlert(string)            {}
func (nopMetrics) RecordCommand(string)          {}
func (nopMetrics) RecordError(string)            {}
func (nopMetrics) RecordZScore(float64)          {}
func (nopMetrics) RecordLatency(string, float64) {}

func TestPipelineForwardsValidTrade(t *testing.T) {
	proc := &countingProc{}
	p := NewIngestPipeline(proc, nopMetrics{})

	err := p.Process(context.Background(), &models.Trade{
		Symbol:    "BTCUSDT",
		Timestamp: 1700000000,
		Price:     64000,
		Quantity:  0.5,
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if proc.n != 1 {
		t.Fatalf("expected 1 forwarded trade, got %d", proc.n)
	}
}

func TestPipelineRejectsMalformedTrades(t *testing.T) {
	proc := &countingProc{}
	p := NewIngestPipeline(proc, nopMetrics{})

	bad := []*models.Trade{
		nil,
		{Symbol: "", Timestamp: 1700000000, Price: 1, Quantity: 1},
		{Symbol: "BTCUSDT", Timestamp: 0, Price: 1, Quantity: 1},
		{Symbol: "BTCUSDT", Timestamp: 1700000000, Price: 0, Quantity: 1},
		{Symbol: "BTCUSDT", Timestamp: 1700000000, Price: 1, Quantity: -2},
	}
	for i, tr := range bad {
		if err := p.Process(context.Background(), tr); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
	if proc.n != 0 {
		t.Fatalf("malformed trades reached the processor: %d", proc.n)
	}
}
