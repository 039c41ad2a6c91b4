package analytics

import (
	"math"

	"VolSentry/internal/domain/models"
)

const (
	// RecentWindow is the short burst window, in trades.
	RecentWindow = 3
	// BaselineWindow is the trailing window the z-score is measured against.
	BaselineWindow = 60
)

// Compute derives a MetricsSnapshot from the buffer contents. It returns nil
// until the buffer holds a full baseline window. The standard deviation uses
// the sample (n-1) estimator; threshold calibration depends on it.
func Compute(buf *RollingBuffer, whaleThreshold float64) *models.MetricsSnapshot {
	if buf.Len() < BaselineWindow {
		return nil
	}

	recent := 0.0
	for _, t := range buf.LastN(RecentWindow) {
		recent += t.Notional()
	}

	window := buf.LastN(BaselineWindow)
	sum := 0.0
	for i := range window {
		sum += window[i].Notional()
	}
	mean := sum / BaselineWindow

	m2 := 0.0
	for i := range window {
		d := window[i].Notional() - mean
		m2 += d * d
	}
	stdev := math.Sqrt(m2 / (BaselineWindow - 1))

	z := 0.0
	if stdev > 0 {
		z = (recent - mean) / stdev
	}

	latest, _ := buf.Latest()
	return &models.MetricsSnapshot{
		RecentVolume:    recent,
		BaselineAverage: mean,
		ZScore:          z,
		IsWhale:         recent > whaleThreshold,
		Price:           latest.Price,
	}
}
