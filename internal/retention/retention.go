// Package retention computes calendar-day freshness windows for episodes.
//
// Retention (what to keep) and recency (what to surface into context) are
// independent knobs; recency must stay at or below retention.
package retention

import (
	"fmt"
	"time"
)

// DayFormat is the persisted day representation, zero-padded and fixed-width.
const DayFormat = "2006-01-02"

const (
	// DefaultRetentionDays bounds how long an episode is kept before pruning.
	DefaultRetentionDays = 7
	// DefaultRecencyDays bounds how far back context building looks.
	DefaultRecencyDays = 3
	// RecentEpisodeCap bounds how many episodes a recency query returns.
	RecentEpisodeCap = 20
)

// Day truncates an instant to its UTC calendar day.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDay renders an instant's UTC calendar day as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return Day(t).Format(DayFormat)
}

// ParseDay parses a YYYY-MM-DD day string into a UTC midnight instant.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return t, nil
}

// DaysBetween returns the number of whole calendar days from a to b.
// Negative when b's day precedes a's.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}

// Fresh reports whether a day-granularity date is within maxAgeDays of now.
// A date exactly maxAgeDays old is still fresh; dates in the future are too.
func Fresh(now time.Time, date string, maxAgeDays int) bool {
	d, err := ParseDay(date)
	if err != nil {
		// An unparseable date can't be ordered; keep it rather than silently
		// discard a memory.
		return true
	}
	return DaysBetween(d, now) <= maxAgeDays
}

// CutoffDay returns the oldest day still inside a window of the given length
// ending at now, formatted as YYYY-MM-DD.
func CutoffDay(now time.Time, days int) string {
	return FormatDay(Day(now).AddDate(0, 0, -days))
}
