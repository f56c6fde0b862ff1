package export

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/deskpilot/internal/model"
)

func TestWriteCSV(t *testing.T) {
	users := []model.UserMetric{
		{Name: "Alice", Email: "alice@example.com", SessionsInWindow: 12},
		{Name: `Bob "The Builder", Jr`, Email: "bob@example.com"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, "Last 7 Days", users))

	want := "Employee Name,Email,Sessions (Last 7 Days)\n" +
		`"Alice","alice@example.com","12"` + "\n" +
		`"Bob ""The Builder"", Jr","bob@example.com","0"` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_NoRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, "Today", nil))
	assert.Equal(t, "Employee Name,Email,Sessions (Today)\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCSV_PropagatesWriteErrors(t *testing.T) {
	err := WriteCSV(failingWriter{}, "Today", nil)
	assert.ErrorContains(t, err, "disk full")
}

func TestFileName(t *testing.T) {
	now := time.Date(2025, time.January, 10, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "acme_corp__wellness_report_2025-01-10.csv", FileName("Acme Corp!", now))
	assert.Equal(t, "caf__wellness_report_2025-01-10.csv", FileName("Café ", now))
	assert.Equal(t, "company_wellness_report_2025-01-10.csv", FileName("  ", now))
}
