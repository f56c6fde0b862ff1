package stats

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := NewLogObserver(logger)

	obs.ObserveReport(context.Background(), ReportEvent{Name: "report_built", CompanyID: "c1", Range: RangeToday, Users: 4, Duration: time.Millisecond})
	obs.ObserveReport(context.Background(), ReportEvent{Name: "report_built", CompanyID: "c1", Err: errors.New("boom")})

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG msg=report_built company=c1 range=today users=4")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "error=boom")
}

func TestNewLogObserver_NilLogger(t *testing.T) {
	assert.Equal(t, NoopObserver{}, NewLogObserver(nil))
	assert.Equal(t, NoopObserver{}, observerOrNoop([]Observer{nil}))
}
