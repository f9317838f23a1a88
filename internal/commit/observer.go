package commit

import (
	"io"
	"log/slog"
	"time"
)

// CommitEvent captures lightweight telemetry for one committed mutation.
type CommitEvent struct {
	Op       string
	ItemIDs  []string
	Delta    time.Duration
	Duration time.Duration
	Err      error
}

// Observer receives commit events.
type Observer interface {
	ObserveCommit(event CommitEvent)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveCommit(CommitEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes commit events to the provided writer.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) ObserveCommit(event CommitEvent) {
	attrs := []any{
		"op", event.Op,
		"items", len(event.ItemIDs),
		"delta", event.Delta.String(),
		"duration_us", event.Duration.Microseconds(),
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.Error("timeline_commit", attrs...)
		return
	}
	o.logger.Info("timeline_commit", attrs...)
}
