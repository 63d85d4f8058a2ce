package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthContains(t *testing.T) {
	month := NewMonth(time.Date(2024, time.May, 18, 10, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		ts       time.Time
		expected bool
	}{
		{"first second", time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), true},
		{"last second", time.Date(2024, time.May, 31, 23, 59, 59, 0, time.UTC), true},
		{"previous month", time.Date(2024, time.April, 30, 23, 59, 59, 0, time.UTC), false},
		{"next month", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), false},
		{"same month last year", time.Date(2023, time.May, 10, 0, 0, 0, 0, time.UTC), false},
		{"offset zone read as utc", time.Date(2024, time.June, 1, 1, 0, 0, 0, time.FixedZone("CEST", 2*3600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, month.Contains(tt.ts))
			// same answer every time for the same input
			assert.Equal(t, month.Contains(tt.ts), month.Contains(tt.ts))
		})
	}
}

func TestMonthFormatting(t *testing.T) {
	month := NewMonth(time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "commits_2024_03.csv", month.Filename())
	assert.Equal(t, "2024-03", month.String())
}

func TestCalendarDate(t *testing.T) {
	ts, err := time.Parse(time.RFC3339, "2024-05-07T23:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, "2024-05-07", CalendarDate(ts))
}

func TestUpdatedWithin(t *testing.T) {
	now := time.Date(2024, time.May, 31, 12, 0, 0, 0, time.UTC)

	assert.True(t, UpdatedWithin(now.AddDate(0, 0, -1), now, 30))
	assert.True(t, UpdatedWithin(now.AddDate(0, 0, -30), now, 30))
	assert.False(t, UpdatedWithin(now.AddDate(0, 0, -31), now, 30))
	assert.False(t, UpdatedWithin(now.AddDate(0, 0, -30).Add(-time.Second), now, 30))
}
