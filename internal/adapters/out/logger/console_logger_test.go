package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	lines := make([]map[string]interface{}, 0)
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := make(map[string]interface{})
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		lines = append(lines, entry)
	}
	return lines
}

func TestConsoleLogger_WritesStructuredEntries(t *testing.T) {
	var buf bytes.Buffer
	base, err := NewConsoleLoggerWithWriter(&buf, Options{Timezone: "UTC", Level: "info"})
	require.NoError(t, err)

	log := base.WithModule("BookingService").WithFields(out.LogFields{"date": "2024-06-10"})
	log.Debug("booking.admit.debug", out.LogFields{"hidden": true})
	log.Info("booking.admit.succeeded", out.LogFields{"slotLabel": "10:00 - 10:30"})
	log.Error("booking.event.publish_failed", nil)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "BookingService", lines[0]["module"])
	assert.Equal(t, "booking.admit.succeeded", lines[0]["event"])
	assert.Equal(t, "2024-06-10", lines[0]["date"])
	assert.Equal(t, "10:00 - 10:30", lines[0]["slotLabel"])
	assert.NotEmpty(t, lines[0]["time"])

	assert.Equal(t, "error", lines[1]["level"])
}

func TestConsoleLogger_WithFieldsDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base, err := NewConsoleLoggerWithWriter(&buf, Options{})
	require.NoError(t, err)

	_ = base.WithFields(out.LogFields{"requestId": "abc"})
	base.Warn("http.request", out.LogFields{})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.NotContains(t, lines[0], "requestId")
	assert.Equal(t, "unknown", lines[0]["module"])
}

func TestConsoleLogger_InvalidLevel(t *testing.T) {
	_, err := NewConsoleLoggerWithWriter(&bytes.Buffer{}, Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNopLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNopLogger().WithModule("Test").Info("noop", out.LogFields{"a": 1})
	})
}
