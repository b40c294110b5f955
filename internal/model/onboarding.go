package model

import (
	"time"
)

// OnboardingData holds the answers from the 7-step onboarding flow.
// One row per user; once completed it can no longer be modified.
type OnboardingData struct {
	ID                 string     `db:"id" json:"id"`
	UserID             string     `db:"user_id" json:"user_id"`
	TargetRole         string     `db:"target_role" json:"target_role"`
	TargetIndustry     string     `db:"target_industry" json:"target_industry"`
	ExperienceLevel    string     `db:"experience_level" json:"experience_level"`
	DreamMilestone     string     `db:"dream_milestone" json:"dream_milestone"`
	Skills             StringList `db:"skills" json:"skills"`
	PreferredLocations StringList `db:"preferred_locations" json:"preferred_locations"`
	Availability       string     `db:"availability" json:"availability"`
	CompletedAt        *time.Time `db:"completed_at" json:"completed_at"`
}

func (o *OnboardingData) Completed() bool {
	return o.CompletedAt != nil
}
