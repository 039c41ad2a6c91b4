package usecase

import (
	"context"
	"time"

	drepo "VolSentry/internal/domain/repository"
	"VolSentry/pkg/logger"
)

// ControlLoop polls the command source on a fixed cadence and runs each
// received line through the command processor. Poll failures are logged
// and the loop keeps going; a broken control channel never takes down
// ingestion.
type ControlLoop struct {
	source   drepo.CommandSource
	proc     *CommandProcessor
	notifier drepo.Notifier
	metrics  drepo.Metrics
	log      *logger.Logger
	interval time.Duration
}

// NewControlLoop creates a control loop polling at the given interval.
func NewControlLoop(
	source drepo.CommandSource,
	proc *CommandProcessor,
	notifier drepo.Notifier,
	metrics drepo.Metrics,
	log *logger.Logger,
	interval time.Duration,
) *ControlLoop {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &ControlLoop{
		source:   source,
		proc:     proc,
		notifier: notifier,
		metrics:  metrics,
		log:      log,
		interval: interval,
	}
}

// Start launches the polling goroutine. It returns immediately.
func (l *ControlLoop) Start(ctx context.Context) {
	go l.run(ctx)
}

func (l *ControlLoop) run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.poll(ctx)
		}
	}
}

func (l *ControlLoop) poll(ctx context.Context) {
	lines, err := l.source.Poll(ctx)
	if err != nil {
		l.metrics.RecordError("poll")
		l.log.Warn("command poll failed", logger.Error(err))
		return
	}
	for _, line := range lines {
		reply := l.proc.Handle(ctx, line)
		if reply == "" {
			continue
		}
		if err := l.notifier.Send(ctx, reply); err != nil {
			l.metrics.RecordError("notify")
			l.log.Error("command reply failed", logger.Error(err))
		}
	}
}
