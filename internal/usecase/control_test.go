package usecase

import (
	"context"
	"fmt"
	"testing"
)

type scriptedSource struct {
	batches [][]string
	errs    []error
	calls   int
}

func (s *scriptedSource) Poll(ctx context.Context) ([]string, error) {
	i := s.calls
	s.calls++
	var batch []string
	var err error
	if i < len(s.batches) {
		batch = s.batches[i]
	}
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return batch, err
}

func TestControlLoopRepliesToCommands(t *testing.T) {
	proc, _ := newTestProcessor(t, &fakeStore{})
	notifier := &fakeNotifier{}
	src := &scriptedSource{batches: [][]string{{"/z 4", "/unknown", "/vol 3"}}}
	loop := NewControlLoop(src, proc, notifier, fakeMetrics{}, testLogger(t), 0)

	loop.poll(context.Background())

	if len(notifier.sent) != 2 {
		t.Fatalf("expected 2 replies, got %d: %v", len(notifier.sent), notifier.sent)
	}
	if notifier.sent[0] != "✅ Z-score threshold set to: 4" {
		t.Fatalf("first reply: %q", notifier.sent[0])
	}
	if notifier.sent[1] != "✅ Volume multiplier set to: 3x" {
		t.Fatalf("second reply: %q", notifier.sent[1])
	}
}

func TestControlLoopSurvivesPollErrors(t *testing.T) {
	proc, st := newTestProcessor(t, &fakeStore{})
	notifier := &fakeNotifier{}
	src := &scriptedSource{
		batches: [][]string{nil, {"/cooldown 90"}},
		errs:    []error{fmt.Errorf("telegram unreachable"), nil},
	}
	loop := NewControlLoop(src, proc, notifier, fakeMetrics{}, testLogger(t), 0)

	loop.poll(context.Background())
	loop.poll(context.Background())

	if st.Snapshot().CooldownSeconds != 90 {
		t.Fatal("command after failed poll was not applied")
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(notifier.sent))
	}
}
