package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_WithinCancellationWindow(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	tests := []struct {
		name      string
		startTime time.Time
		expected  bool
	}{
		{"well before window", now.Add(48 * time.Hour), true},
		{"just outside window", now.Add(24*time.Hour + time.Minute), true},
		{"exactly at window boundary", now.Add(24 * time.Hour), false},
		{"inside window", now.Add(2 * time.Hour), false},
		{"already started", now.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{StartTime: tt.startTime}
			assert.Equal(t, tt.expected, b.WithinCancellationWindow(now, window))
		})
	}
}

func TestBooking_SessionOver(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		endTime  time.Time
		expected bool
	}{
		{"ended an hour ago", now.Add(-time.Hour), true},
		{"ends exactly now", now, true},
		{"still in progress", now.Add(30 * time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{EndTime: tt.endTime}
			assert.Equal(t, tt.expected, b.SessionOver(now))
		})
	}
}

func TestBooking_IsActiveAndTerminal(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.True(t, (&Booking{Status: StatusCompleted}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())

	assert.True(t, (&Booking{Status: StatusCompleted}).IsTerminal())
	assert.True(t, (&Booking{Status: StatusCancelled}).IsTerminal())
	assert.False(t, (&Booking{Status: StatusPending}).IsTerminal())
	assert.False(t, (&Booking{Status: StatusConfirmed}).IsTerminal())
}
