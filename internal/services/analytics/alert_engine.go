package analytics

import (
	"sync"
	"time"

	"VolSentry/internal/domain/models"
)

// whaleZScoreGate is the fixed secondary z-score gate on whale alerts.
// Unlike every other threshold it is deliberately not operator-tunable.
const whaleZScoreGate = 2.0

// AlertEngine decides whether a metrics snapshot fires an alert. A single
// cooldown clock is shared across both alert kinds: firing either kind
// silences both until the cooldown elapses. Counters are mutated only on
// the ingestion loop but read concurrently by status queries, so all state
// lives behind a mutex.
type AlertEngine struct {
	mu    sync.Mutex
	stats models.AlertStats
	now   func() time.Time
}

// NewAlertEngine creates an engine with zeroed counters.
func NewAlertEngine() *AlertEngine {
	return &AlertEngine{now: time.Now}
}

// Observe records the latest traded price for status reporting.
func (e *AlertEngine) Observe(price float64) {
	e.mu.Lock()
	e.stats.LastPrice = price
	e.mu.Unlock()
}

// Decide evaluates the snapshot against the settings in effect and returns
// the fired alert event, or nil. Rules in priority order, first match wins:
//
//  1. high volume: z >= ZThreshold and volume ratio >= VolumeRatio
//  2. whale: recent volume above WhaleThreshold and z >= whaleZScoreGate
//
// Nothing fires while paused or within the cooldown window. A fired alert
// is spent immediately: counters and the cooldown clock advance even if
// the downstream send later fails.
func (e *AlertEngine) Decide(snap *models.MetricsSnapshot, st models.SettingsSnapshot) *models.AlertEvent {
	if snap == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.stats.LastVolume = snap.RecentVolume
	e.stats.LastZScore = snap.ZScore

	if st.Paused {
		return nil
	}

	now := e.now()
	if e.stats.LastAlertUnix != 0 && now.Unix()-e.stats.LastAlertUnix < int64(st.CooldownSeconds) {
		return nil
	}

	switch {
	case snap.ZScore >= st.ZThreshold && snap.VolumeRatio() >= st.VolumeRatio:
		e.stats.AlertCount++
		e.stats.LastAlertUnix = now.Unix()
		return &models.AlertEvent{
			Kind:     models.AlertHighVolume,
			Seq:      e.stats.AlertCount,
			At:       now,
			Snapshot: *snap,
			Settings: st,
		}
	case snap.IsWhale && snap.ZScore >= whaleZScoreGate:
		e.stats.WhaleCount++
		e.stats.LastAlertUnix = now.Unix()
		return &models.AlertEvent{
			Kind:     models.AlertWhale,
			Seq:      e.stats.WhaleCount,
			At:       now,
			Snapshot: *snap,
			Settings: st,
		}
	}
	return nil
}

// Stats returns a consistent copy of the counter state.
func (e *AlertEngine) Stats() models.AlertStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}
