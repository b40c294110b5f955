package model

import (
	"time"
)

const (
	StatusPlanned   = "Planned"
	StatusApplied   = "Applied"
	StatusInterview = "Interview"
	StatusOffer     = "Offer"
	StatusRejected  = "Rejected"
)

// ValidStatus reports whether s is one of the Kanban pipeline statuses.
// Any status may transition to any other; the board is not forward-only.
func ValidStatus(s string) bool {
	switch s {
	case StatusPlanned, StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

type Application struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	CompanyID   string    `db:"company_id" json:"company_id"`
	JobTitle    string    `db:"job_title" json:"job_title"`
	JobURL      *string   `db:"job_url" json:"job_url"`
	Status      string    `db:"status" json:"status"`
	AppliedDate *Date     `db:"applied_date" json:"applied_date"`
	Notes       *string   `db:"notes" json:"notes"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	// Joined company, present when listed or fetched with details.
	Company *Company `db:"-" json:"company,omitempty"`
}
