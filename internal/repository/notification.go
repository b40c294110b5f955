package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jobbuddy/api/internal/model"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository is an append-only per-user event log. Rows are
// never mutated except the read flag, and deleted only explicitly or by
// user cascade.
type NotificationRepository interface {
	WithTx(tx *sqlx.Tx) NotificationRepository
	Create(n *model.Notification) error
	ByID(userID, notificationID string) (*model.Notification, error)
	List(userID string, f NotificationFilter) ([]*model.Notification, int, error)
	UnreadCount(userID string) (int, error)
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) error
	Delete(userID, notificationID string) error
}

type NotificationFilter struct {
	IsRead  *bool
	Type    string
	Page    int
	PerPage int
}

type notificationRepository struct {
	db ext
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) WithTx(tx *sqlx.Tx) NotificationRepository {
	return &notificationRepository{db: tx}
}

func (r *notificationRepository) Create(n *model.Notification) error {
	query := `INSERT INTO notifications (id, user_id, type, title, message, related_type, related_id, is_read, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		n.ID,
		n.UserID,
		n.Type,
		n.Title,
		n.Message,
		n.RelatedType,
		n.RelatedID,
		n.IsRead,
		n.CreatedAt,
	)
	return err
}

func (r *notificationRepository) ByID(userID, notificationID string) (*model.Notification, error) {
	n := &model.Notification{}
	err := sqlx.Get(r.db, n, `SELECT * FROM notifications WHERE id = $1 AND user_id = $2`, notificationID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// List returns one page in stable reverse-chronological order (ties
// broken by id so paging never reorders).
func (r *notificationRepository) List(userID string, f NotificationFilter) ([]*model.Notification, int, error) {
	where := `WHERE user_id = $1`
	args := []any{userID}
	if f.IsRead != nil {
		args = append(args, *f.IsRead)
		where += fmt.Sprintf(` AND is_read = $%d`, len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		where += fmt.Sprintf(` AND type = $%d`, len(args))
	}

	var total int
	err := sqlx.Get(r.db, &total, `SELECT COUNT(*) FROM notifications `+where, args...)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT * FROM notifications %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)

	notifications := []*model.Notification{}
	err = sqlx.Select(r.db, &notifications, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) UnreadCount(userID string) (int, error) {
	var count int
	err := sqlx.Get(r.db, &count, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID)
	return count, err
}

func (r *notificationRepository) MarkRead(userID, notificationID string) error {
	result, err := r.db.Exec(`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, notificationID, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead flips every unread row in one statement.
func (r *notificationRepository) MarkAllRead(userID string) error {
	_, err := r.db.Exec(`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	return err
}

func (r *notificationRepository) Delete(userID, notificationID string) error {
	result, err := r.db.Exec(`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, notificationID, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// NewNotification fills the common fields for an event emitted now.
func NewNotification(id, userID, typ, title string, message, relatedType, relatedID *string) *model.Notification {
	return &model.Notification{
		ID:          id,
		UserID:      userID,
		Type:        typ,
		Title:       title,
		Message:     message,
		RelatedType: relatedType,
		RelatedID:   relatedID,
		IsRead:      false,
		CreatedAt:   time.Now().UTC(),
	}
}
