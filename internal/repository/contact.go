package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jobbuddy/api/internal/model"
)

var (
	ErrContactNotFound  = errors.New("contact not found")
	ErrDuplicateContact = errors.New("contact with this email already exists for this company")
)

type ContactRepository interface {
	WithTx(tx *sqlx.Tx) ContactRepository
	Create(contact *model.Contact) error
	ByID(userID, contactID string) (*model.Contact, error)
	ByCompanyEmail(companyID, email string) (*model.Contact, error)
	List(userID, companyID, search string, page, perPage int) ([]*model.Contact, int, error)
	Update(contact *model.Contact) error
	Delete(userID, contactID string) error
}

type contactRepository struct {
	db ext
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) WithTx(tx *sqlx.Tx) ContactRepository {
	return &contactRepository{db: tx}
}

func (r *contactRepository) Create(contact *model.Contact) error {
	query := `INSERT INTO contacts (id, user_id, company_id, name, email, linkedin_url, role, source, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		contact.ID,
		contact.UserID,
		contact.CompanyID,
		contact.Name,
		contact.Email,
		contact.LinkedinURL,
		contact.Role,
		contact.Source,
		contact.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateContact
	}
	return err
}

func (r *contactRepository) ByID(userID, contactID string) (*model.Contact, error) {
	contact := &model.Contact{}
	err := sqlx.Get(r.db, contact, `SELECT * FROM contacts WHERE id = $1 AND user_id = $2`, contactID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *contactRepository) ByCompanyEmail(companyID, email string) (*model.Contact, error) {
	contact := &model.Contact{}
	err := sqlx.Get(r.db, contact, `SELECT * FROM contacts WHERE company_id = $1 AND email = $2`, companyID, email)
	if err == sql.ErrNoRows {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *contactRepository) List(userID, companyID, search string, page, perPage int) ([]*model.Contact, int, error) {
	where := `WHERE user_id = $1`
	args := []any{userID}
	if companyID != "" {
		args = append(args, companyID)
		where += fmt.Sprintf(` AND company_id = $%d`, len(args))
	}
	if search != "" {
		args = append(args, search)
		where += fmt.Sprintf(` AND (name LIKE '%%' || $%d || '%%' OR email LIKE '%%' || $%d || '%%')`, len(args), len(args))
	}

	var total int
	err := sqlx.Get(r.db, &total, `SELECT COUNT(*) FROM contacts `+where, args...)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT * FROM contacts %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, perPage, (page-1)*perPage)

	contacts := []*model.Contact{}
	err = sqlx.Select(r.db, &contacts, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

func (r *contactRepository) Update(contact *model.Contact) error {
	query := `UPDATE contacts
	          SET name = $1, email = $2, linkedin_url = $3, role = $4
	          WHERE id = $5 AND user_id = $6`

	result, err := r.db.Exec(query,
		contact.Name,
		contact.Email,
		contact.LinkedinURL,
		contact.Role,
		contact.ID,
		contact.UserID,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateContact
	}
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *contactRepository) Delete(userID, contactID string) error {
	result, err := r.db.Exec(`DELETE FROM contacts WHERE id = $1 AND user_id = $2`, contactID, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrContactNotFound
	}
	return nil
}
