package analytics

import (
	"time"

	"github.com/sammyhga/SoulsData/internal/domain"
)

// Cutoff returns now minus windowDays calendar days at the same wall-clock
// time in loc.
func Cutoff(now time.Time, windowDays int, loc *time.Location) time.Time {
	return now.In(loc).AddDate(0, 0, -windowDays)
}

// FilterWindow keeps entries dated at or after the cutoff, in input order.
func FilterWindow(entries []domain.Entry, windowDays int, now time.Time, loc *time.Location) []domain.Entry {
	cutoff := Cutoff(now, windowDays, loc)

	kept := make([]domain.Entry, 0, len(entries))
	for i := range entries {
		at, ok := domain.ParseDate(entries[i].Date, loc)
		if !ok || at.Before(cutoff) {
			continue
		}
		kept = append(kept, entries[i])
	}
	return kept
}

// CountUndated counts entries whose date does not parse.
func CountUndated(entries []domain.Entry, loc *time.Location) int {
	n := 0
	for i := range entries {
		if _, ok := domain.ParseDate(entries[i].Date, loc); !ok {
			n++
		}
	}
	return n
}
