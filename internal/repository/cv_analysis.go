package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/jobbuddy/api/internal/model"
)

var ErrCVAnalysisNotFound = errors.New("cv analysis not found")

type CVAnalysisRepository interface {
	WithTx(tx *sqlx.Tx) CVAnalysisRepository
	Create(analysis *model.CVAnalysis) error
	ByID(userID, analysisID string) (*model.CVAnalysis, error)
	List(userID string, page, perPage int) ([]*model.CVAnalysis, int, error)
	Delete(userID, analysisID string) error
}

type cvAnalysisRepository struct {
	db ext
}

func NewCVAnalysisRepository(db *sqlx.DB) CVAnalysisRepository {
	return &cvAnalysisRepository{db: db}
}

func (r *cvAnalysisRepository) WithTx(tx *sqlx.Tx) CVAnalysisRepository {
	return &cvAnalysisRepository{db: tx}
}

func (r *cvAnalysisRepository) Create(analysis *model.CVAnalysis) error {
	query := `INSERT INTO cv_analyses (id, user_id, application_id, cv_filename, job_description, ats_score, matched_keywords, missing_keywords, suggestions, api_used, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		analysis.ID,
		analysis.UserID,
		analysis.ApplicationID,
		analysis.CVFilename,
		analysis.JobDescription,
		analysis.ATSScore,
		analysis.MatchedKeywords,
		analysis.MissingKeywords,
		analysis.Suggestions,
		analysis.APIUsed,
		analysis.CreatedAt,
	)
	return err
}

func (r *cvAnalysisRepository) ByID(userID, analysisID string) (*model.CVAnalysis, error) {
	analysis := &model.CVAnalysis{}
	err := sqlx.Get(r.db, analysis, `SELECT * FROM cv_analyses WHERE id = $1 AND user_id = $2`, analysisID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrCVAnalysisNotFound
	}
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

func (r *cvAnalysisRepository) List(userID string, page, perPage int) ([]*model.CVAnalysis, int, error) {
	var total int
	err := sqlx.Get(r.db, &total, `SELECT COUNT(*) FROM cv_analyses WHERE user_id = $1`, userID)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM cv_analyses WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	analyses := []*model.CVAnalysis{}
	err = sqlx.Select(r.db, &analyses, query, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	return analyses, total, nil
}

func (r *cvAnalysisRepository) Delete(userID, analysisID string) error {
	result, err := r.db.Exec(`DELETE FROM cv_analyses WHERE id = $1 AND user_id = $2`, analysisID, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCVAnalysisNotFound
	}
	return nil
}
