package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlot_Overlaps(t *testing.T) {
	base := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	slot := &Slot{
		StartTime: base,
		EndTime:   base.Add(time.Hour),
	}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected bool
	}{
		{"identical range", base, base.Add(time.Hour), true},
		{"contained inside", base.Add(15 * time.Minute), base.Add(30 * time.Minute), true},
		{"overlaps start", base.Add(-30 * time.Minute), base.Add(30 * time.Minute), true},
		{"overlaps end", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"covers the whole slot", base.Add(-time.Hour), base.Add(2 * time.Hour), true},
		{"touches start boundary", base.Add(-time.Hour), base, false},
		{"touches end boundary", base.Add(time.Hour), base.Add(2 * time.Hour), false},
		{"fully before", base.Add(-2 * time.Hour), base.Add(-time.Hour), false},
		{"fully after", base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slot.Overlaps(tt.start, tt.end))
		})
	}
}

func TestSlot_IsPast(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, (&Slot{StartTime: now.Add(-time.Minute)}).IsPast(now))
	assert.True(t, (&Slot{StartTime: now}).IsPast(now))
	assert.False(t, (&Slot{StartTime: now.Add(time.Minute)}).IsPast(now))
}

func TestSlot_Duration(t *testing.T) {
	base := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	slot := &Slot{StartTime: base, EndTime: base.Add(90 * time.Minute)}

	assert.Equal(t, 90*time.Minute, slot.Duration())
}

func TestTotalPrice(t *testing.T) {
	items := []*CartItem{
		{Price: 1500_00},
		{Price: 2000_00},
		{Price: 0},
	}

	assert.Equal(t, int64(3500_00), TotalPrice(items))
	assert.Equal(t, int64(0), TotalPrice(nil))
}
