package model

import (
	"time"
)

const (
	NotificationFollowUp     = "follow_up"
	NotificationGoalReminder = "goal_reminder"
	NotificationMicroQuest   = "micro_quest"
	NotificationSystem       = "system"
)

// Notification is an append-only per-user event. Only the read flag is
// ever mutated; rows are removed explicitly by the user or by cascade.
type Notification struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Type        string    `db:"type" json:"type"`
	Title       string    `db:"title" json:"title"`
	Message     *string   `db:"message" json:"message"`
	RelatedType *string   `db:"related_type" json:"related_type"`
	RelatedID   *string   `db:"related_id" json:"related_id"`
	IsRead      bool      `db:"is_read" json:"is_read"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
