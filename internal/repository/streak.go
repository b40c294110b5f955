package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jobbuddy/api/internal/model"
)

var ErrStreakNotFound = errors.New("streak not found")

// StreakRepository is the cumulative per-user ledger: exactly one row per
// user, created at registration and updated in place.
type StreakRepository interface {
	WithTx(tx *sqlx.Tx) StreakRepository
	GetOrCreate(userID string) (*model.Streak, error)
	ByUserID(userID string) (*model.Streak, error)
	Update(streak *model.Streak) error
	AddPoints(userID string, points int) error
}

type streakRepository struct {
	db ext
}

func NewStreakRepository(db *sqlx.DB) StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) WithTx(tx *sqlx.Tx) StreakRepository {
	return &streakRepository{db: tx}
}

func (r *streakRepository) GetOrCreate(userID string) (*model.Streak, error) {
	streak, err := r.ByUserID(userID)
	if err == nil {
		return streak, nil
	}
	if !errors.Is(err, ErrStreakNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	streak = &model.Streak{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	query := `INSERT INTO streaks (id, user_id, current_streak, longest_streak, last_activity_date, total_points, created_at, updated_at)
	          VALUES ($1, $2, 0, 0, NULL, 0, $3, $4)`

	_, err = r.db.Exec(query, streak.ID, streak.UserID, streak.CreatedAt, streak.UpdatedAt)
	if isUniqueViolation(err) {
		return r.ByUserID(userID)
	}
	if err != nil {
		return nil, err
	}
	return streak, nil
}

func (r *streakRepository) ByUserID(userID string) (*model.Streak, error) {
	streak := &model.Streak{}
	err := sqlx.Get(r.db, streak, `SELECT * FROM streaks WHERE user_id = $1`, userID)
	if err == sql.ErrNoRows {
		return nil, ErrStreakNotFound
	}
	if err != nil {
		return nil, err
	}
	return streak, nil
}

func (r *streakRepository) Update(streak *model.Streak) error {
	query := `UPDATE streaks
	          SET current_streak = $1, longest_streak = $2, last_activity_date = $3, total_points = $4, updated_at = $5
	          WHERE user_id = $6`

	result, err := r.db.Exec(query,
		streak.CurrentStreak,
		streak.LongestStreak,
		streak.LastActivityDate,
		streak.TotalPoints,
		time.Now().UTC(),
		streak.UserID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrStreakNotFound
	}
	return nil
}

func (r *streakRepository) AddPoints(userID string, points int) error {
	query := `UPDATE streaks SET total_points = total_points + $1, updated_at = $2 WHERE user_id = $3`

	result, err := r.db.Exec(query, points, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrStreakNotFound
	}
	return nil
}
