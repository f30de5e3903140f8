package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		value   string
		minutes int
		wantErr bool
	}{
		{value: "09:30", minutes: 570},
		{value: "00:00", minutes: 0},
		{value: "24:00", minutes: 1440},
		{value: "9:30", wantErr: true},
		{value: "24:01", wantErr: true},
		{value: "12:60", wantErr: true},
		{value: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			minutes, err := ParseClock(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, minutes)
		})
	}
}

func TestParseOperatingWindow(t *testing.T) {
	window, err := ParseOperatingWindow("09:30", "20:00")
	require.NoError(t, err)
	assert.Equal(t, DefaultOperatingWindow, window)

	_, err = ParseOperatingWindow("20:00", "09:30")
	assert.Error(t, err)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "MissingField", ErrorCode(fmt.Errorf("booking.admit: %w: contact", ErrMissingField)))
	assert.Equal(t, "SlotAlreadyBooked", ErrorCode(ErrSlotAlreadyBooked))
	assert.Equal(t, "Internal", ErrorCode(fmt.Errorf("boom")))
}

func TestLookupAppointmentType(t *testing.T) {
	appointmentType, ok := LookupAppointmentType(60)
	require.True(t, ok)
	assert.Equal(t, "Specific Treatment", appointmentType.Label)

	_, ok = LookupAppointmentType(45)
	assert.False(t, ok)
}
