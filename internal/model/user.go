package model

import (
	"time"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"-"`
}

// UserStats holds per-user record counts for the profile endpoint.
type UserStats struct {
	TotalApplications int `db:"total_applications" json:"total_applications"`
	TotalCompanies    int `db:"total_companies" json:"total_companies"`
	TotalOutreach     int `db:"total_outreach" json:"total_outreach"`
	TotalCVAnalyses   int `db:"total_cv_analyses" json:"total_cv_analyses"`
}
