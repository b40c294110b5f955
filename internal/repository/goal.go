package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jobbuddy/api/internal/model"
)

var ErrGoalNotFound = errors.New("goal not found")

// GoalRepository is the weekly ledger. Rows are keyed by
// (user_id, week_start) with a UNIQUE constraint; GetOrCreate absorbs
// concurrent creation races by re-reading after a unique violation.
type GoalRepository interface {
	WithTx(tx *sqlx.Tx) GoalRepository
	GetOrCreate(userID string, weekStart model.Date) (*model.Goal, error)
	ByWeek(userID string, weekStart model.Date) (*model.Goal, error)
	Update(goal *model.Goal) error
	IncrementApplications(userID string, weekStart model.Date) error
	IncrementOutreach(userID string, weekStart model.Date) error
	// IncrementApplicationsIfExists bumps the counter only when the
	// week's row already exists; absent rows are silently skipped.
	IncrementApplicationsIfExists(userID string, weekStart model.Date) error
}

type goalRepository struct {
	db ext
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) WithTx(tx *sqlx.Tx) GoalRepository {
	return &goalRepository{db: tx}
}

func (r *goalRepository) GetOrCreate(userID string, weekStart model.Date) (*model.Goal, error) {
	goal, err := r.ByWeek(userID, weekStart)
	if err == nil {
		return goal, nil
	}
	if !errors.Is(err, ErrGoalNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	goal = &model.Goal{
		ID:        uuid.New().String(),
		UserID:    userID,
		WeekStart: weekStart,
		CreatedAt: now,
		UpdatedAt: now,
	}
	query := `INSERT INTO goals (id, user_id, week_start, applications_goal, applications_current, outreach_goal, outreach_current, created_at, updated_at)
	          VALUES ($1, $2, $3, 0, 0, 0, 0, $4, $5)`

	_, err = r.db.Exec(query, goal.ID, goal.UserID, goal.WeekStart, goal.CreatedAt, goal.UpdatedAt)
	if isUniqueViolation(err) {
		// Lost the race; the row exists now.
		return r.ByWeek(userID, weekStart)
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (r *goalRepository) ByWeek(userID string, weekStart model.Date) (*model.Goal, error) {
	goal := &model.Goal{}
	err := sqlx.Get(r.db, goal, `SELECT * FROM goals WHERE user_id = $1 AND week_start = $2`, userID, weekStart)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET applications_goal = $1, applications_current = $2, outreach_goal = $3, outreach_current = $4, updated_at = $5
	          WHERE id = $6 AND user_id = $7`

	result, err := r.db.Exec(query,
		goal.ApplicationsGoal,
		goal.ApplicationsCurrent,
		goal.OutreachGoal,
		goal.OutreachCurrent,
		time.Now().UTC(),
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *goalRepository) IncrementApplications(userID string, weekStart model.Date) error {
	goal, err := r.GetOrCreate(userID, weekStart)
	if err != nil {
		return err
	}
	return r.bump(goal.ID, "applications_current")
}

func (r *goalRepository) IncrementOutreach(userID string, weekStart model.Date) error {
	goal, err := r.GetOrCreate(userID, weekStart)
	if err != nil {
		return err
	}
	return r.bump(goal.ID, "outreach_current")
}

func (r *goalRepository) IncrementApplicationsIfExists(userID string, weekStart model.Date) error {
	goal, err := r.ByWeek(userID, weekStart)
	if errors.Is(err, ErrGoalNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.bump(goal.ID, "applications_current")
}

func (r *goalRepository) bump(goalID, column string) error {
	// column is one of the two counter names, never user input.
	query := `UPDATE goals SET ` + column + ` = ` + column + ` + 1, updated_at = $1 WHERE id = $2`
	_, err := r.db.Exec(query, time.Now().UTC(), goalID)
	return err
}
