package model

import (
	"time"
)

const (
	ContactSourceManual = "Manual"
	ContactSourceAPI    = "API"
)

type Contact struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	CompanyID   string    `db:"company_id" json:"company_id"`
	Name        string    `db:"name" json:"name"`
	Email       *string   `db:"email" json:"email"`
	LinkedinURL *string   `db:"linkedin_url" json:"linkedin_url"`
	Role        *string   `db:"role" json:"role"`
	Source      string    `db:"source" json:"source"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
