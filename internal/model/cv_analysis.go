package model

import (
	"time"
)

// CVAnalysis stores the result of matching a CV against a job description.
type CVAnalysis struct {
	ID              string     `db:"id" json:"id"`
	UserID          string     `db:"user_id" json:"user_id"`
	ApplicationID   *string    `db:"application_id" json:"application_id"`
	CVFilename      *string    `db:"cv_filename" json:"cv_filename"`
	JobDescription  string     `db:"job_description" json:"job_description"`
	ATSScore        int        `db:"ats_score" json:"ats_score"`
	MatchedKeywords StringList `db:"matched_keywords" json:"matched_keywords"`
	MissingKeywords StringList `db:"missing_keywords" json:"missing_keywords"`
	Suggestions     StringList `db:"suggestions" json:"suggestions"`
	APIUsed         string     `db:"api_used" json:"api_used"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}
