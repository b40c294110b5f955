package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jobbuddy/api/internal/model"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	WithTx(tx *sqlx.Tx) ApplicationRepository
	Create(app *model.Application) error
	ByID(userID, appID string) (*model.Application, error)
	List(userID string, f ApplicationFilter) ([]*model.Application, int, error)
	Update(app *model.Application) error
	Delete(userID, appID string) error
}

// ApplicationFilter narrows List results; zero values mean "no filter".
type ApplicationFilter struct {
	Status    string
	CompanyID string
	Search    string
	Page      int
	PerPage   int
}

type applicationRepository struct {
	db ext
}

func NewApplicationRepository(db *sqlx.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) WithTx(tx *sqlx.Tx) ApplicationRepository {
	return &applicationRepository{db: tx}
}

func (r *applicationRepository) Create(app *model.Application) error {
	query := `INSERT INTO applications (id, user_id, company_id, job_title, job_url, status, applied_date, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		app.ID,
		app.UserID,
		app.CompanyID,
		app.JobTitle,
		app.JobURL,
		app.Status,
		app.AppliedDate,
		app.Notes,
		app.CreatedAt,
		app.UpdatedAt,
	)
	return err
}

func (r *applicationRepository) ByID(userID, appID string) (*model.Application, error) {
	app := &model.Application{}
	err := sqlx.Get(r.db, app, `SELECT * FROM applications WHERE id = $1 AND user_id = $2`, appID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *applicationRepository) List(userID string, f ApplicationFilter) ([]*model.Application, int, error) {
	where := `WHERE user_id = $1`
	args := []any{userID}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if f.CompanyID != "" {
		args = append(args, f.CompanyID)
		where += fmt.Sprintf(` AND company_id = $%d`, len(args))
	}
	if f.Search != "" {
		args = append(args, f.Search)
		where += fmt.Sprintf(` AND job_title LIKE '%%' || $%d || '%%'`, len(args))
	}

	var total int
	err := sqlx.Get(r.db, &total, `SELECT COUNT(*) FROM applications `+where, args...)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT * FROM applications %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)

	apps := []*model.Application{}
	err = sqlx.Select(r.db, &apps, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *applicationRepository) Update(app *model.Application) error {
	query := `UPDATE applications
	          SET job_title = $1, job_url = $2, status = $3, applied_date = $4, notes = $5, updated_at = $6
	          WHERE id = $7 AND user_id = $8`

	result, err := r.db.Exec(query,
		app.JobTitle,
		app.JobURL,
		app.Status,
		app.AppliedDate,
		app.Notes,
		app.UpdatedAt,
		app.ID,
		app.UserID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *applicationRepository) Delete(userID, appID string) error {
	result, err := r.db.Exec(`DELETE FROM applications WHERE id = $1 AND user_id = $2`, appID, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
