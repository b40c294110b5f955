package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/jobbuddy/api/internal/model"
)

var ErrOnboardingNotFound = errors.New("onboarding data not found")

type OnboardingRepository interface {
	WithTx(tx *sqlx.Tx) OnboardingRepository
	Upsert(data *model.OnboardingData) error
	ByUserID(userID string) (*model.OnboardingData, error)
}

type onboardingRepository struct {
	db ext
}

func NewOnboardingRepository(db *sqlx.DB) OnboardingRepository {
	return &onboardingRepository{db: db}
}

func (r *onboardingRepository) WithTx(tx *sqlx.Tx) OnboardingRepository {
	return &onboardingRepository{db: tx}
}

// Upsert inserts or replaces the single onboarding row for the user. The
// "cannot modify after completion" rule lives in the service layer.
func (r *onboardingRepository) Upsert(data *model.OnboardingData) error {
	query := `INSERT INTO onboarding_data (id, user_id, target_role, target_industry, experience_level, dream_milestone, skills, preferred_locations, availability, completed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          ON CONFLICT (user_id) DO UPDATE SET
	              target_role = excluded.target_role,
	              target_industry = excluded.target_industry,
	              experience_level = excluded.experience_level,
	              dream_milestone = excluded.dream_milestone,
	              skills = excluded.skills,
	              preferred_locations = excluded.preferred_locations,
	              availability = excluded.availability,
	              completed_at = excluded.completed_at`

	_, err := r.db.Exec(query,
		data.ID,
		data.UserID,
		data.TargetRole,
		data.TargetIndustry,
		data.ExperienceLevel,
		data.DreamMilestone,
		data.Skills,
		data.PreferredLocations,
		data.Availability,
		data.CompletedAt,
	)
	return err
}

func (r *onboardingRepository) ByUserID(userID string) (*model.OnboardingData, error) {
	data := &model.OnboardingData{}
	err := sqlx.Get(r.db, data, `SELECT * FROM onboarding_data WHERE user_id = $1`, userID)
	if err == sql.ErrNoRows {
		return nil, ErrOnboardingNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
