// Package week resolves the weekly ledger key: the Monday beginning the
// ISO week containing a given instant. Every component that needs "this
// week" must go through Start so the key is computed identically
// everywhere.
package week

import (
	"time"
)

// Start returns the UTC date (midnight) of the most recent Monday at or
// before t. If t falls on a Monday, its own date is returned.
func Start(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}
