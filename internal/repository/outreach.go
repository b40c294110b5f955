package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jobbuddy/api/internal/model"
)

var ErrOutreachNotFound = errors.New("outreach activity not found")

type OutreachRepository interface {
	WithTx(tx *sqlx.Tx) OutreachRepository
	Create(activity *model.OutreachActivity) error
	ByID(userID, activityID string) (*model.OutreachActivity, error)
	List(userID string, f OutreachFilter) ([]*model.OutreachActivity, int, error)
	Update(activity *model.OutreachActivity) error
	Delete(userID, activityID string) error
}

type OutreachFilter struct {
	ApplicationID string
	CompanyID     string
	Status        string
	Page          int
	PerPage       int
}

type outreachRepository struct {
	db ext
}

func NewOutreachRepository(db *sqlx.DB) OutreachRepository {
	return &outreachRepository{db: db}
}

func (r *outreachRepository) WithTx(tx *sqlx.Tx) OutreachRepository {
	return &outreachRepository{db: tx}
}

func (r *outreachRepository) Create(activity *model.OutreachActivity) error {
	query := `INSERT INTO outreach_activities (id, user_id, application_id, company_id, contact_id, channel, message_template, sent_date, follow_up_date, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		activity.ID,
		activity.UserID,
		activity.ApplicationID,
		activity.CompanyID,
		activity.ContactID,
		activity.Channel,
		activity.MessageTemplate,
		activity.SentDate,
		activity.FollowUpDate,
		activity.Status,
		activity.CreatedAt,
	)
	return err
}

func (r *outreachRepository) ByID(userID, activityID string) (*model.OutreachActivity, error) {
	activity := &model.OutreachActivity{}
	err := sqlx.Get(r.db, activity, `SELECT * FROM outreach_activities WHERE id = $1 AND user_id = $2`, activityID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrOutreachNotFound
	}
	if err != nil {
		return nil, err
	}
	return activity, nil
}

func (r *outreachRepository) List(userID string, f OutreachFilter) ([]*model.OutreachActivity, int, error) {
	where := `WHERE user_id = $1`
	args := []any{userID}
	if f.ApplicationID != "" {
		args = append(args, f.ApplicationID)
		where += fmt.Sprintf(` AND application_id = $%d`, len(args))
	}
	if f.CompanyID != "" {
		args = append(args, f.CompanyID)
		where += fmt.Sprintf(` AND company_id = $%d`, len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	var total int
	err := sqlx.Get(r.db, &total, `SELECT COUNT(*) FROM outreach_activities `+where, args...)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT * FROM outreach_activities %s ORDER BY sent_date DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)

	activities := []*model.OutreachActivity{}
	err = sqlx.Select(r.db, &activities, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

func (r *outreachRepository) Update(activity *model.OutreachActivity) error {
	query := `UPDATE outreach_activities
	          SET channel = $1, message_template = $2, follow_up_date = $3, status = $4
	          WHERE id = $5 AND user_id = $6`

	result, err := r.db.Exec(query,
		activity.Channel,
		activity.MessageTemplate,
		activity.FollowUpDate,
		activity.Status,
		activity.ID,
		activity.UserID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrOutreachNotFound
	}
	return nil
}

func (r *outreachRepository) Delete(userID, activityID string) error {
	result, err := r.db.Exec(`DELETE FROM outreach_activities WHERE id = $1 AND user_id = $2`, activityID, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrOutreachNotFound
	}
	return nil
}
