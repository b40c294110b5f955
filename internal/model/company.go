package model

import (
	"time"
)

type Company struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Website   *string   `db:"website" json:"website"`
	Location  *string   `db:"location" json:"location"`
	Industry  *string   `db:"industry" json:"industry"`
	Notes     *string   `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Populated only on list responses.
	ContactsCount     *int `db:"contacts_count" json:"contacts_count,omitempty"`
	ApplicationsCount *int `db:"applications_count" json:"applications_count,omitempty"`
}
