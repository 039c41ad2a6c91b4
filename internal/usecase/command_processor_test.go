package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"VolSentry/internal/domain/models"
	"VolSentry/internal/services/analytics"
	"VolSentry/internal/services/settings"
	"VolSentry/pkg/logger"
)

type fakeStore struct {
	persisted  []models.SettingsSnapshot
	loadValue  *models.SettingsSnapshot
	persistErr error
}

func (s *fakeStore) Load(ctx context.Context) (*models.SettingsSnapshot, error) {
	return s.loadValue, nil
}

func (s *fakeStore) Persist(ctx context.Context, v models.SettingsSnapshot) error {
	if s.persistErr != nil {
		return s.persistErr
	}
	s.persisted = append(s.persisted, v)
	return nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) Send(ctx context.Context, text string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, text)
	return nil
}

type fakeMetrics struct{}

func (fakeMetrics) RecordTrade(string, float64)   {}
func (fakeMetrics) RecordAlert(string)            {}
func (fakeMetrics) RecordCommand(string)          {}
func (fakeMetrics) RecordError(string)            {}
func (fakeMetrics) RecordZScore(float64)          {}
func (fakeMetrics) RecordLatency(string, float64) {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func newTestProcessor(t *testing.T, store *fakeStore) (*CommandProcessor, *settings.Settings) {
	t.Helper()
	st := settings.New(models.DefaultSettings())
	engine := analytics.NewAlertEngine()
	log := testLogger(t)
	tracker := NewTradeTracker(
		analytics.NewRollingBuffer(3600), engine, st,
		&fakeNotifier{}, nil, nil, fakeMetrics{}, log)
	return NewCommandProcessor(st, engine, tracker, store, fakeMetrics{}, log), st
}

func TestHandleSetZThreshold(t *testing.T) {
	store := &fakeStore{}
	proc, st := newTestProcessor(t, store)

	reply := proc.Handle(context.Background(), "/z 4.5")
	if reply != "✅ Z-score threshold set to: 4.5" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if got := st.Snapshot().ZThreshold; got != 4.5 {
		t.Fatalf("ZThreshold = %v, want 4.5", got)
	}
	if len(store.persisted) != 1 {
		t.Fatalf("expected 1 persist call, got %d", len(store.persisted))
	}
	if store.persisted[0].ZThreshold != 4.5 {
		t.Fatalf("persisted ZThreshold = %v", store.persisted[0].ZThreshold)
	}
}

func TestHandleOutOfRangeKeepsPriorValue(t *testing.T) {
	store := &fakeStore{}
	proc, st := newTestProcessor(t, store)

	cases := []struct {
		line string
		want string
	}{
		{"/z 25", "❌ Z-score must be between 0.5 and 20"},
		{"/vol 0.5", "❌ Volume must be between 1 and 100"},
		{"/cooldown 5", "❌ Cooldown must be between 10 and 3600 seconds"},
		{"/whale 500", "❌ Whale threshold must be at least $10,000"},
	}
	for _, tc := range cases {
		if got := proc.Handle(context.Background(), tc.line); got != tc.want {
			t.Fatalf("%s: reply %q, want %q", tc.line, got, tc.want)
		}
	}
	if len(store.persisted) != 0 {
		t.Fatalf("rejected values must not persist, got %d calls", len(store.persisted))
	}
	def := models.DefaultSettings()
	if st.Snapshot() != def {
		t.Fatalf("settings changed by rejected commands: %+v", st.Snapshot())
	}
}

func TestHandleBadArgumentGivesUsageHint(t *testing.T) {
	proc, _ := newTestProcessor(t, &fakeStore{})

	cases := map[string]string{
		"/z abc":      "❌ Usage: /z 3.5",
		"/z":          "❌ Usage: /z 3.5",
		"/vol":        "❌ Usage: /vol 2.5",
		"/cooldown x": "❌ Usage: /cooldown 60",
		"/whale 1 2":  "❌ Usage: /whale 100000",
	}
	for line, want := range cases {
		if got := proc.Handle(context.Background(), line); got != want {
			t.Fatalf("%s: reply %q, want %q", line, got, want)
		}
	}
}

func TestHandlePauseResume(t *testing.T) {
	proc, st := newTestProcessor(t, &fakeStore{})

	if got := proc.Handle(context.Background(), "/pause"); !strings.Contains(got, "paused") {
		t.Fatalf("pause reply: %q", got)
	}
	if !st.Snapshot().Paused {
		t.Fatal("expected paused after /pause")
	}
	if got := proc.Handle(context.Background(), "/resume"); !strings.Contains(got, "resumed") {
		t.Fatalf("resume reply: %q", got)
	}
	if st.Snapshot().Paused {
		t.Fatal("expected unpaused after /resume")
	}
}

func TestHandleUnknownCommandSilent(t *testing.T) {
	proc, _ := newTestProcessor(t, &fakeStore{})

	for _, line := range []string{"/bogus", "hello there", "", "   "} {
		if got := proc.Handle(context.Background(), line); got != "" {
			t.Fatalf("%q: expected no reply, got %q", line, got)
		}
	}
}

func TestHandleStatusReportsSettingsAndCounters(t *testing.T) {
	proc, st := newTestProcessor(t, &fakeStore{})
	if err := st.SetZThreshold(5); err != nil {
		t.Fatalf("SetZThreshold: %v", err)
	}

	got := proc.Handle(context.Background(), "/status")
	for _, want := range []string{
		"Z-Score Threshold: 5",
		"Volume Multiplier: 2x",
		"Cooldown: 60s",
		"Whale Threshold: $100,000",
		"▶️ Active",
		"Alerts sent: 0",
		"Last alert: None",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("status missing %q:\n%s", want, got)
		}
	}

	// /start is an alias for /status
	if alias := proc.Handle(context.Background(), "/start"); alias != got {
		t.Fatal("/start should render the same status report")
	}
}

func TestHandleStatusWhilePaused(t *testing.T) {
	proc, st := newTestProcessor(t, &fakeStore{})
	st.SetPaused(true)

	got := proc.Handle(context.Background(), "/status")
	if !strings.Contains(got, "⏸️ Paused") {
		t.Fatalf("status should show paused state:\n%s", got)
	}
}

func TestHandleStatsReportsLastValues(t *testing.T) {
	store := &fakeStore{}
	proc, _ := newTestProcessor(t, store)
	proc.engine.Observe(64000.5)
	proc.engine.Decide(&models.MetricsSnapshot{
		RecentVolume:    600,
		BaselineAverage: 100,
		ZScore:          4.2,
	}, models.SettingsSnapshot{ZThreshold: 3, VolumeRatio: 2, CooldownSeconds: 60})

	got := proc.Handle(context.Background(), "/stats")
	for _, want := range []string{
		"Total alerts: 1",
		"Whale detections: 0",
		"Price: $64000.50",
		"Volume (3s): $600",
		"Z-Score: 4.20",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("stats missing %q:\n%s", want, got)
		}
	}
}

func TestHandleCaseInsensitiveCommandWord(t *testing.T) {
	proc, st := newTestProcessor(t, &fakeStore{})

	if got := proc.Handle(context.Background(), "/Z 6"); got != "✅ Z-score threshold set to: 6" {
		t.Fatalf("unexpected reply: %q", got)
	}
	if st.Snapshot().ZThreshold != 6 {
		t.Fatalf("ZThreshold = %v", st.Snapshot().ZThreshold)
	}
}

func TestPersistFailureKeepsAppliedValue(t *testing.T) {
	store := &fakeStore{persistErr: context.DeadlineExceeded}
	proc, st := newTestProcessor(t, store)

	reply := proc.Handle(context.Background(), "/cooldown 120")
	if reply != "✅ Cooldown set to: 120 seconds" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if st.Snapshot().CooldownSeconds != 120 {
		t.Fatal("in-memory value must stay applied when persist fails")
	}
}

func TestHandleTestCommand(t *testing.T) {
	proc, _ := newTestProcessor(t, &fakeStore{})
	proc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }

	got := proc.Handle(context.Background(), "/test")
	if !strings.Contains(got, "Test Alert") || !strings.Contains(got, "09:30:00") {
		t.Fatalf("test reply: %q", got)
	}
}
