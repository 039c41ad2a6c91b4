package settings

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"VolSentry/internal/domain/models"
)

// ErrOutOfRange marks a rejected setter argument. The wrapping message is
// user-facing and names the accepted range.
var ErrOutOfRange = errors.New("value out of range")

var validate = validator.New()

// Settings is the shared runtime-tunable state: read on every trade by the
// ingestion loop, mutated by the control loop. An RWMutex guarantees that a
// successful set is visible to the very next snapshot and that multi-field
// reads are never torn.
type Settings struct {
	mu sync.RWMutex
	v  models.SettingsSnapshot
}

// New creates Settings from an initial snapshot, normally the persisted one
// or models.DefaultSettings().
func New(initial models.SettingsSnapshot) *Settings {
	return &Settings{v: initial}
}

// Snapshot returns a consistent value copy of all tunables.
func (s *Settings) Snapshot() models.SettingsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v
}

// SetZThreshold sets the z-score threshold, accepted range [0.5, 20].
func (s *Settings) SetZThreshold(v float64) error {
	if err := validate.Var(v, "gte=0.5,lte=20"); err != nil {
		return fmt.Errorf("z-score must be between 0.5 and 20: %w", ErrOutOfRange)
	}
	s.mu.Lock()
	s.v.ZThreshold = v
	s.mu.Unlock()
	return nil
}

// SetVolumeRatio sets the volume multiplier threshold, accepted range [1, 100].
func (s *Settings) SetVolumeRatio(v float64) error {
	if err := validate.Var(v, "gte=1,lte=100"); err != nil {
		return fmt.Errorf("volume multiplier must be between 1 and 100: %w", ErrOutOfRange)
	}
	s.mu.Lock()
	s.v.VolumeRatio = v
	s.mu.Unlock()
	return nil
}

// SetCooldown sets the alert cooldown in seconds, accepted range [10, 3600].
func (s *Settings) SetCooldown(v int) error {
	if err := validate.Var(v, "gte=10,lte=3600"); err != nil {
		return fmt.Errorf("cooldown must be between 10 and 3600 seconds: %w", ErrOutOfRange)
	}
	s.mu.Lock()
	s.v.CooldownSeconds = v
	s.mu.Unlock()
	return nil
}

// SetWhaleThreshold sets the absolute whale notional threshold, minimum 10000.
func (s *Settings) SetWhaleThreshold(v float64) error {
	if err := validate.Var(v, "gte=10000"); err != nil {
		return fmt.Errorf("whale threshold must be at least $10,000: %w", ErrOutOfRange)
	}
	s.mu.Lock()
	s.v.WhaleThreshold = v
	s.mu.Unlock()
	return nil
}

// SetPaused toggles alert evaluation.
func (s *Settings) SetPaused(paused bool) {
	s.mu.Lock()
	s.v.Paused = paused
	s.mu.Unlock()
}
