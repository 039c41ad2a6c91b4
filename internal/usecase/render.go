package usecase

import (
	"fmt"
	"strings"
	"time"

	"VolSentry/internal/domain/models"
	"VolSentry/pkg/util"
)

// Message rendering for the Telegram channel. All messages use HTML parse
// mode; numeric formatting matches the operator-facing conventions
// (thousand-separated dollars, two-decimal prices and z-scores).

func renderAlert(ev *models.AlertEvent) string {
	snap := ev.Snapshot
	switch ev.Kind {
	case models.AlertWhale:
		return fmt.Sprintf(`🐋 <b>WHALE DETECTED #%d</b>

💰 <b>Large Volume</b>: %s
📊 <b>Price</b>: $%.2f
📐 <b>Z-Score</b>: %.2f
🎯 <b>Threshold</b>: %s`,
			ev.Seq,
			util.FormatUSD(snap.RecentVolume),
			snap.Price,
			snap.ZScore,
			util.FormatUSD(ev.Settings.WhaleThreshold))
	default:
		return fmt.Sprintf(`🚨 <b>HIGH VOLUME ALERT #%d</b>

📊 <b>Bitcoin</b>: $%.2f
📈 <b>Volume (3s)</b>: %s
📉 <b>Avg (60s)</b>: %s
⚡ <b>Ratio</b>: %.1fx
📐 <b>Z-Score</b>: %.2f

⚙️ Settings: Z≥%g Vol≥%gx`,
			ev.Seq,
			snap.Price,
			util.FormatUSD(snap.RecentVolume),
			util.FormatUSD(snap.BaselineAverage),
			snap.VolumeRatio(),
			snap.ZScore,
			ev.Settings.ZThreshold,
			ev.Settings.VolumeRatio)
	}
}

func renderStatus(st models.SettingsSnapshot, stats models.AlertStats, startedAt, now time.Time) string {
	state := "▶️ Active"
	if st.Paused {
		state = "⏸️ Paused"
	}
	lastAlert := "None"
	if stats.LastAlertUnix != 0 {
		lastAlert = util.FormatAgo(now.Sub(time.Unix(stats.LastAlertUnix, 0)))
	}
	return fmt.Sprintf(`📊 <b>Bitcoin Tracker Status</b>

<b>Settings:</b>
• Z-Score Threshold: %g
• Volume Multiplier: %gx
• Cooldown: %ds
• Whale Threshold: %s
• Status: %s

<b>Statistics:</b>
• Alerts sent: %d
• Uptime: %s
• Last alert: %s

<b>Commands:</b>
/help - Show all commands
/stats - Show statistics`,
		st.ZThreshold,
		st.VolumeRatio,
		st.CooldownSeconds,
		util.FormatUSD(st.WhaleThreshold),
		state,
		stats.AlertCount,
		util.FormatUptime(now.Sub(startedAt)),
		lastAlert)
}

func renderStats(st models.SettingsSnapshot, stats models.AlertStats, startedAt, now time.Time) string {
	return fmt.Sprintf(`📈 <b>Tracker Statistics</b>

<b>Performance:</b>
• Total alerts: %d
• Whale detections: %d
• Uptime: %s
• Start time: %s

<b>Last Values:</b>
• Price: $%.2f
• Volume (3s): $%.0f
• Z-Score: %.2f

<b>Current Settings:</b>
• Z-threshold: %g
• Vol multiplier: %gx
• Cooldown: %ds`,
		stats.AlertCount,
		stats.WhaleCount,
		util.FormatUptime(now.Sub(startedAt)),
		startedAt.Format("2006-01-02 15:04:05"),
		stats.LastPrice,
		stats.LastVolume,
		stats.LastZScore,
		st.ZThreshold,
		st.VolumeRatio,
		st.CooldownSeconds)
}

func renderHelp() string {
	return `📖 <b>Available Commands</b>

<b>View Settings:</b>
/status - Show current settings
/stats - Show statistics

<b>Modify Settings:</b>
/z <value> - Set Z-score (0.5-20)
  Example: /z 3.5

/vol <value> - Set volume multiplier (1-100)
  Example: /vol 2.5

/cooldown <seconds> - Set cooldown (10-3600)
  Example: /cooldown 60

/whale <amount> - Set whale threshold
  Example: /whale 100000

<b>Control:</b>
/pause - Pause alerts
/resume - Resume alerts
/test - Send test notification

<b>Examples:</b>
• Less alerts: /z 5
• More alerts: /z 2
• Only big moves: /vol 5
• Detect smaller whales: /whale 50000`
}

// StartupMessage renders the announcement sent once the stream connects.
func StartupMessage(symbol string, st models.SettingsSnapshot) string {
	return renderStartup(symbol, st)
}

func renderStartup(symbol string, st models.SettingsSnapshot) string {
	return fmt.Sprintf(`🟢 <b>Bitcoin Tracker Started</b>

<b>Monitoring:</b> %s
<b>Settings:</b>
• Z-Score: ≥%g
• Volume: ≥%gx average
• Cooldown: %ds
• Whale: >%s

<b>Commands:</b>
/status - View settings
/help - Show all commands

<i>You can modify settings anytime!</i>`,
		strings.ToUpper(symbol),
		st.ZThreshold,
		st.VolumeRatio,
		st.CooldownSeconds,
		util.FormatUSD(st.WhaleThreshold))
}

func renderTest(now time.Time) string {
	return fmt.Sprintf(`🧪 <b>Test Alert</b>

If you see this, notifications are working!
Time: %s`, now.Format("15:04:05"))
}
