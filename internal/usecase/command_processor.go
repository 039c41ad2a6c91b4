package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	drepo "VolSentry/internal/domain/repository"
	"VolSentry/internal/services/analytics"
	"VolSentry/internal/services/settings"
	"VolSentry/pkg/logger"
	"VolSentry/pkg/util"
)

// CommandProcessor maps operator command lines to settings mutations and
// status reports. Every successful mutation is persisted immediately so a
// restart comes back with the operator's last values. Unknown commands are
// ignored without a reply.
type CommandProcessor struct {
	settings *settings.Settings
	engine   *analytics.AlertEngine
	tracker  *TradeTracker
	store    drepo.SettingsStore
	metrics  drepo.Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewCommandProcessor creates a processor over the shared settings and
// alert engine state.
func NewCommandProcessor(
	st *settings.Settings,
	engine *analytics.AlertEngine,
	tracker *TradeTracker,
	store drepo.SettingsStore,
	metrics drepo.Metrics,
	log *logger.Logger,
) *CommandProcessor {
	return &CommandProcessor{
		settings: st,
		engine:   engine,
		tracker:  tracker,
		store:    store,
		metrics:  metrics,
		log:      log,
		now:      time.Now,
	}
}

// Handle parses one command line and returns the reply text, or "" when no
// reply should be sent. Matching is case-insensitive on the command word.
func (c *CommandProcessor) Handle(ctx context.Context, text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return ""
	}
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "/status", "/start":
		c.metrics.RecordCommand("status")
		return renderStatus(c.settings.Snapshot(), c.engine.Stats(), c.tracker.StartedAt(), c.now())

	case "/stats":
		c.metrics.RecordCommand("stats")
		return renderStats(c.settings.Snapshot(), c.engine.Stats(), c.tracker.StartedAt(), c.now())

	case "/help":
		c.metrics.RecordCommand("help")
		return renderHelp()

	case "/test":
		c.metrics.RecordCommand("test")
		return renderTest(c.now())

	case "/pause":
		c.metrics.RecordCommand("pause")
		c.settings.SetPaused(true)
		return "⏸️ Alerts paused. Use /resume to continue."

	case "/resume":
		c.metrics.RecordCommand("resume")
		c.settings.SetPaused(false)
		return "▶️ Alerts resumed!"

	case "/z":
		c.metrics.RecordCommand("z")
		v, ok := parseFloatArg(args)
		if !ok {
			return "❌ Usage: /z 3.5"
		}
		if err := c.settings.SetZThreshold(v); err != nil {
			return "❌ Z-score must be between 0.5 and 20"
		}
		c.persist(ctx)
		return fmt.Sprintf("✅ Z-score threshold set to: %g", v)

	case "/vol":
		c.metrics.RecordCommand("vol")
		v, ok := parseFloatArg(args)
		if !ok {
			return "❌ Usage: /vol 2.5"
		}
		if err := c.settings.SetVolumeRatio(v); err != nil {
			return "❌ Volume must be between 1 and 100"
		}
		c.persist(ctx)
		return fmt.Sprintf("✅ Volume multiplier set to: %gx", v)

	case "/cooldown":
		c.metrics.RecordCommand("cooldown")
		v, ok := parseIntArg(args)
		if !ok {
			return "❌ Usage: /cooldown 60"
		}
		if err := c.settings.SetCooldown(v); err != nil {
			return "❌ Cooldown must be between 10 and 3600 seconds"
		}
		c.persist(ctx)
		return fmt.Sprintf("✅ Cooldown set to: %d seconds", v)

	case "/whale":
		c.metrics.RecordCommand("whale")
		v, ok := parseFloatArg(args)
		if !ok {
			return "❌ Usage: /whale 100000"
		}
		if err := c.settings.SetWhaleThreshold(v); err != nil {
			return "❌ Whale threshold must be at least $10,000"
		}
		c.persist(ctx)
		return fmt.Sprintf("✅ Whale threshold set to: %s", util.FormatUSD(v))
	}

	// unknown command, stay silent
	return ""
}

// persist writes the current snapshot through the store. Failure is logged
// and the in-memory value stays applied.
func (c *CommandProcessor) persist(ctx context.Context) {
	if err := c.store.Persist(ctx, c.settings.Snapshot()); err != nil {
		c.metrics.RecordError("persist")
		c.log.Error("settings persist failed", logger.Error(err))
		return
	}
	c.log.Info("settings saved")
}

func parseFloatArg(args []string) (float64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseIntArg(args []string) (int, bool) {
	if len(args) != 1 {
		return 0, false
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, false
	}
	return v, true
}
