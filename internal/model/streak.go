package model

import (
	"time"
)

// Streak is the cumulative per-user activity ledger: one row per user,
// created at registration and updated in place. Invariant after every
// update: LongestStreak >= CurrentStreak.
type Streak struct {
	ID               string    `db:"id" json:"id"`
	UserID           string    `db:"user_id" json:"user_id"`
	CurrentStreak    int       `db:"current_streak" json:"current_streak"`
	LongestStreak    int       `db:"longest_streak" json:"longest_streak"`
	LastActivityDate *Date     `db:"last_activity_date" json:"last_activity_date"`
	TotalPoints      int       `db:"total_points" json:"total_points"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Touch applies the daily-activity rule for the given date: same day is a
// no-op, the next day extends the streak, a gap resets it to 1.
func (s *Streak) Touch(today Date) {
	if s.LastActivityDate != nil && s.LastActivityDate.Equal(today.Time) {
		return
	}
	if s.LastActivityDate != nil && today.DaysSince(*s.LastActivityDate) == 1 {
		s.CurrentStreak++
	} else {
		s.CurrentStreak = 1
	}
	d := today
	s.LastActivityDate = &d
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
}
