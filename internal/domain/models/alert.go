package models

import "time"

// AlertKind discriminates fired alert events.
type AlertKind string

const (
	AlertHighVolume AlertKind = "high_volume"
	AlertWhale      AlertKind = "whale"
)

// AlertEvent is an immutable record of a fired alert: the snapshot that
// triggered it and the settings in effect at decision time.
type AlertEvent struct {
	Kind     AlertKind        `json:"kind"`
	Seq      int64            `json:"seq"` // per-kind counter value at emission
	At       time.Time        `json:"at"`
	Snapshot MetricsSnapshot  `json:"snapshot"`
	Settings SettingsSnapshot `json:"settings"`
}

// AlertStats is the monotonic counter state read by status queries.
type AlertStats struct {
	AlertCount    int64
	WhaleCount    int64
	LastAlertUnix int64 // 0 = never fired

	// Last observed values, kept for the /stats report.
	LastPrice  float64
	LastVolume float64
	LastZScore float64
}
