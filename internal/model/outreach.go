package model

import (
	"time"
)

const (
	OutreachChannelEmail    = "Email"
	OutreachChannelLinkedIn = "LinkedIn"

	OutreachStatusSent       = "Sent"
	OutreachStatusResponded  = "Responded"
	OutreachStatusNoResponse = "No Response"
)

// OutreachActivity records one direct reach-out to a contact. Exactly one
// of ApplicationID / CompanyID is set (enforced by a CHECK constraint).
type OutreachActivity struct {
	ID              string     `db:"id" json:"id"`
	UserID          string     `db:"user_id" json:"user_id"`
	ApplicationID   *string    `db:"application_id" json:"application_id"`
	CompanyID       *string    `db:"company_id" json:"company_id"`
	ContactID       string     `db:"contact_id" json:"contact_id"`
	Channel         string     `db:"channel" json:"channel"`
	MessageTemplate *string    `db:"message_template" json:"message_template"`
	SentDate        time.Time  `db:"sent_date" json:"sent_date"`
	FollowUpDate    *time.Time `db:"follow_up_date" json:"follow_up_date"`
	Status          string     `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}
