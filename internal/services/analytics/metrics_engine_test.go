package analytics

import (
	"math"
	"testing"

	"VolSentry/internal/domain/models"
)

func fillNotional(b *RollingBuffer, n int, notional float64) {
	for i := 0; i < n; i++ {
		b.Append(mkTrade(int64(i), notional))
	}
}

func TestComputeNilUntilBaselineFull(t *testing.T) {
	b := NewRollingBuffer(3600)
	fillNotional(b, BaselineWindow-1, 100)
	if snap := Compute(b, 100000); snap != nil {
		t.Fatalf("expected nil snapshot with %d samples", b.Len())
	}
	b.Append(mkTrade(60, 100))
	if snap := Compute(b, 100000); snap == nil {
		t.Fatalf("expected snapshot with full baseline window")
	}
}

func TestComputeFlatVolumeZeroZScore(t *testing.T) {
	b := NewRollingBuffer(3600)
	fillNotional(b, BaselineWindow, 100)
	snap := Compute(b, 100000)
	if snap == nil {
		t.Fatalf("expected snapshot")
	}
	if snap.ZScore != 0 {
		t.Fatalf("flat volume should give z=0, got %v", snap.ZScore)
	}
	if snap.RecentVolume != 300 {
		t.Fatalf("recent volume: got %v want 300", snap.RecentVolume)
	}
	if snap.BaselineAverage != 100 {
		t.Fatalf("baseline: got %v want 100", snap.BaselineAverage)
	}
}

func TestComputeSampleStdev(t *testing.T) {
	// 57 trades of notional 100, then 3 of 200:
	// mean = (57*100 + 3*200)/60 = 105
	// sum of squared deviations = 57*25 + 3*9025 = 28500
	// sample stdev = sqrt(28500/59), recent = 600
	b := NewRollingBuffer(3600)
	fillNotional(b, 57, 100)
	fillNotional(b, 3, 200)
	snap := Compute(b, 100000)
	if snap == nil {
		t.Fatalf("expected snapshot")
	}
	want := (600.0 - 105.0) / math.Sqrt(28500.0/59.0)
	if math.Abs(snap.ZScore-want) > 1e-12 {
		t.Fatalf("z-score: got %v want %v", snap.ZScore, want)
	}
}

func TestComputeDeterministic(t *testing.T) {
	b := NewRollingBuffer(3600)
	for i := 0; i < 80; i++ {
		b.Append(mkTrade(int64(i), float64(50+i%7*13)))
	}
	a := Compute(b, 100000)
	c := Compute(b, 100000)
	if *a != *c {
		t.Fatalf("same buffer state must yield identical snapshots: %+v vs %+v", a, c)
	}
}

func TestComputeWhaleFlag(t *testing.T) {
	b := NewRollingBuffer(3600)
	fillNotional(b, BaselineWindow, 40000)
	snap := Compute(b, 100000)
	if !snap.IsWhale {
		t.Fatalf("recent volume %v above threshold should flag whale", snap.RecentVolume)
	}
	snap = Compute(b, 200000)
	if snap.IsWhale {
		t.Fatalf("recent volume %v below threshold should not flag whale", snap.RecentVolume)
	}
}

func TestComputeLatestPrice(t *testing.T) {
	b := NewRollingBuffer(3600)
	fillNotional(b, BaselineWindow, 100)
	b.Append(models.Trade{Symbol: "BTCUSDT", Timestamp: 99, Price: 64123.5, Quantity: 0.01})
	snap := Compute(b, 100000)
	if snap.Price != 64123.5 {
		t.Fatalf("snapshot price %v != latest trade price", snap.Price)
	}
}
