package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartsAt_UsesCallerLocation(t *testing.T) {
	// DATE columns come back from the driver as midnight UTC
	zone := time.FixedZone("UTC-11", -11*60*60)
	appt := &Appointment{
		Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Time: "12:30",
	}

	startsAt, err := appt.StartsAt(zone)
	require.NoError(t, err)
	assert.True(t, startsAt.Equal(time.Date(2026, 3, 2, 12, 30, 0, 0, zone)))
}

func TestStartsAt_MalformedTime(t *testing.T) {
	appt := &Appointment{
		Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Time: "25:00",
	}

	_, err := appt.StartsAt(time.UTC)
	assert.Error(t, err)
}

func TestCanBeCancelled(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   bool
	}{
		{StatusConfirmed, true},
		{StatusCompleted, false},
		{StatusCancelled, false},
	}

	for _, tt := range tests {
		appt := &Appointment{Status: tt.status}
		assert.Equal(t, tt.want, appt.CanBeCancelled(), "status %s", tt.status)
		assert.Equal(t, !tt.want, appt.IsTerminal(), "status %s", tt.status)
	}
}
