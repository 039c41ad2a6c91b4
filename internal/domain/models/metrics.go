package models

// MetricsSnapshot is the derived view of the rolling trade window, recomputed
// on every trade once the baseline window is full.
type MetricsSnapshot struct {
	RecentVolume    float64 // notional over the short window (last 3 trades)
	BaselineAverage float64 // mean notional over the baseline window (last 60)
	ZScore          float64 // deviations of RecentVolume above the baseline mean
	IsWhale         bool    // RecentVolume exceeds the absolute whale threshold
	Price           float64 // latest observed price
}

// VolumeRatio returns RecentVolume relative to the baseline average,
// or 0 when the baseline is zero.
func (m *MetricsSnapshot) VolumeRatio() float64 {
	if m.BaselineAverage <= 0 {
		return 0
	}
	return m.RecentVolume / m.BaselineAverage
}
