package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jobbuddy/api/internal/model"
)

var ErrCompanyNotFound = errors.New("company not found")

type CompanyRepository interface {
	WithTx(tx *sqlx.Tx) CompanyRepository
	Create(company *model.Company) error
	ByID(userID, companyID string) (*model.Company, error)
	ByName(userID, name string) (*model.Company, error)
	List(userID, search string, page, perPage int) ([]*model.Company, int, error)
	Update(company *model.Company) error
	Delete(userID, companyID string) error
}

type companyRepository struct {
	db ext
}

func NewCompanyRepository(db *sqlx.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) WithTx(tx *sqlx.Tx) CompanyRepository {
	return &companyRepository{db: tx}
}

func (r *companyRepository) Create(company *model.Company) error {
	query := `INSERT INTO companies (id, user_id, name, website, location, industry, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		company.ID,
		company.UserID,
		company.Name,
		company.Website,
		company.Location,
		company.Industry,
		company.Notes,
		company.CreatedAt,
	)
	return err
}

func (r *companyRepository) ByID(userID, companyID string) (*model.Company, error) {
	company := &model.Company{}
	err := sqlx.Get(r.db, company, `SELECT * FROM companies WHERE id = $1 AND user_id = $2`, companyID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (r *companyRepository) ByName(userID, name string) (*model.Company, error) {
	company := &model.Company{}
	err := sqlx.Get(r.db, company, `SELECT * FROM companies WHERE user_id = $1 AND name = $2`, userID, name)
	if err == sql.ErrNoRows {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

// List returns one page of companies with contact/application counts,
// plus the total match count for pagination.
func (r *companyRepository) List(userID, search string, page, perPage int) ([]*model.Company, int, error) {
	where := `WHERE c.user_id = $1`
	args := []any{userID}
	if search != "" {
		where += ` AND c.name LIKE '%' || $2 || '%'`
		args = append(args, search)
	}

	var total int
	err := sqlx.Get(r.db, &total, `SELECT COUNT(*) FROM companies c `+where, args...)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT c.*,
	    (SELECT COUNT(*) FROM contacts WHERE company_id = c.id) AS contacts_count,
	    (SELECT COUNT(*) FROM applications WHERE company_id = c.id) AS applications_count
	    FROM companies c %s
	    ORDER BY c.created_at DESC
	    LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, perPage, (page-1)*perPage)

	companies := []*model.Company{}
	err = sqlx.Select(r.db, &companies, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

func (r *companyRepository) Update(company *model.Company) error {
	query := `UPDATE companies
	          SET name = $1, website = $2, location = $3, industry = $4, notes = $5
	          WHERE id = $6 AND user_id = $7`

	result, err := r.db.Exec(query,
		company.Name,
		company.Website,
		company.Location,
		company.Industry,
		company.Notes,
		company.ID,
		company.UserID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *companyRepository) Delete(userID, companyID string) error {
	result, err := r.db.Exec(`DELETE FROM companies WHERE id = $1 AND user_id = $2`, companyID, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
