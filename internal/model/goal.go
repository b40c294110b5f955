package model

import (
	"encoding/json"
	"time"
)

// Goal is the weekly ledger row: one per (user, week). WeekStart is always
// the Monday of the week, date-only.
type Goal struct {
	ID                  string    `db:"id" json:"id"`
	UserID              string    `db:"user_id" json:"user_id"`
	WeekStart           Date      `db:"week_start" json:"week_start"`
	ApplicationsGoal    int       `db:"applications_goal" json:"applications_goal"`
	ApplicationsCurrent int       `db:"applications_current" json:"applications_current"`
	OutreachGoal        int       `db:"outreach_goal" json:"outreach_goal"`
	OutreachCurrent     int       `db:"outreach_current" json:"outreach_current"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// Progress returns the display percentage for a (current, goal) counter
// pair: 0 when there is no target, otherwise clamped to 100.
func Progress(current, goal int) int {
	if goal <= 0 {
		return 0
	}
	p := current * 100 / goal
	if p > 100 {
		return 100
	}
	return p
}

// MarshalJSON adds the derived progress percentages; they are never
// persisted.
func (g Goal) MarshalJSON() ([]byte, error) {
	type alias Goal
	return json.Marshal(struct {
		alias
		ApplicationsProgress int `json:"applications_progress"`
		OutreachProgress     int `json:"outreach_progress"`
	}{
		alias:                alias(g),
		ApplicationsProgress: Progress(g.ApplicationsCurrent, g.ApplicationsGoal),
		OutreachProgress:     Progress(g.OutreachCurrent, g.OutreachGoal),
	})
}
