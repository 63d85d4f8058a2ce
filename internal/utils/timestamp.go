package utils

import (
	"fmt"
	"time"

	"github.com/gnomegl/commitmonth/internal/models"
)

// Month is the reporting month, captured once when a run starts.
type Month struct {
	Year  int
	Month time.Month
}

func NewMonth(now time.Time) Month {
	return Month{Year: now.Year(), Month: now.Month()}
}

// Contains reports whether t, read in UTC, falls inside the month.
func (m Month) Contains(t time.Time) bool {
	utc := t.UTC()
	return utc.Year() == m.Year && utc.Month() == m.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Filename is the CSV report name for the month, e.g. commits_2024_05.csv.
func (m Month) Filename() string {
	return fmt.Sprintf("commits_%04d_%02d.csv", m.Year, int(m.Month))
}

// CalendarDate truncates t to its UTC date.
func CalendarDate(t time.Time) string {
	return t.UTC().Format(models.DateLayout)
}

// UpdatedWithin reports whether updated is no older than days before now.
func UpdatedWithin(updated, now time.Time, days int) bool {
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
	return !updated.Before(cutoff)
}
