package models

// SettingsSnapshot is a consistent value copy of the runtime tunables.
// The JSON field names match the persisted settings document.
// Paused is runtime-only and never persisted.
type SettingsSnapshot struct {
	ZThreshold      float64 `json:"z_threshold"`
	VolumeRatio     float64 `json:"volume_threshold"`
	CooldownSeconds int     `json:"alert_cooldown"`
	WhaleThreshold  float64 `json:"whale_threshold"`
	Paused          bool    `json:"-"`
}

// DefaultSettings returns the tunables used when no persisted snapshot exists.
func DefaultSettings() SettingsSnapshot {
	return SettingsSnapshot{
		ZThreshold:      3.0,
		VolumeRatio:     2.0,
		CooldownSeconds: 60,
		WhaleThreshold:  100000,
	}
}
