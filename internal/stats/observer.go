package stats

import (
	"context"
	"log/slog"
	"time"
)

// ReportEvent captures one report build.
type ReportEvent struct {
	Name      string
	CompanyID string
	Range     RangeKind
	Users     int
	Duration  time.Duration
	Err       error
}

// Observer receives report build events.
type Observer interface {
	ObserveReport(ctx context.Context, event ReportEvent)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveReport(context.Context, ReportEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver logs report events through logger.
func NewLogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		return NoopObserver{}
	}
	return &logObserver{logger: logger}
}

func (o *logObserver) ObserveReport(ctx context.Context, event ReportEvent) {
	attrs := []any{
		"company", event.CompanyID,
		"range", string(event.Range),
		"users", event.Users,
		"duration_ms", event.Duration.Milliseconds(),
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, event.Name, attrs...)
		return
	}
	o.logger.DebugContext(ctx, event.Name, attrs...)
}

func observerOrNoop(observers []Observer) Observer {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopObserver{}
}
