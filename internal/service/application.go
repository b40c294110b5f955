package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jobbuddy/api/internal/model"
	"github.com/jobbuddy/api/internal/repository"
	"github.com/jobbuddy/api/internal/validation"
)

type ApplicationService struct {
	db                    *sqlx.DB
	applicationRepository repository.ApplicationRepository
	companyRepository     repository.CompanyRepository
	lifecycle             *LifecycleService
}

func NewApplicationService(
	db *sqlx.DB,
	applicationRepository repository.ApplicationRepository,
	companyRepository repository.CompanyRepository,
	lifecycle *LifecycleService,
) *ApplicationService {
	return &ApplicationService{
		db:                    db,
		applicationRepository: applicationRepository,
		companyRepository:     companyRepository,
		lifecycle:             lifecycle,
	}
}

type ApplicationInput struct {
	CompanyID string  `json:"company_id"`
	JobTitle  string  `json:"job_title"`
	JobURL    *string `json:"job_url"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes"`
}

// Create inserts the application and, when it is born in Applied status,
// runs the applied side effects in the same transaction.
func (s *ApplicationService) Create(userID string, in ApplicationInput) (*model.Application, error) {
	if err := validation.ValidateJobTitle(in.JobTitle); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	status := in.Status
	if status == "" {
		status = model.StatusPlanned
	}
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, in.Status)
	}

	// Ownership check doubles as existence check.
	company, err := s.companyRepository.ByID(userID, in.CompanyID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return nil, fmt.Errorf("%w: company", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to check company: %w", err)
	}

	now := time.Now().UTC()
	app := &model.Application{
		ID:        uuid.NewString(),
		UserID:    userID,
		CompanyID: in.CompanyID,
		JobTitle:  strings.TrimSpace(in.JobTitle),
		JobURL:    in.JobURL,
		Status:    status,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if status == model.StatusApplied {
		today := model.Today()
		app.AppliedDate = &today
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.applicationRepository.WithTx(tx).Create(app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	if status == model.StatusApplied {
		if err := s.lifecycle.OnApplicationApplied(tx, app, company.Name); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return app, nil
}

func (s *ApplicationService) ByID(userID, appID string) (*model.Application, error) {
	app, err := s.applicationRepository.ByID(userID, appID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

func (s *ApplicationService) List(userID string, f repository.ApplicationFilter) ([]*model.Application, int, error) {
	if f.Status != "" && !model.ValidStatus(f.Status) {
		return nil, 0, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, f.Status)
	}
	return s.applicationRepository.List(userID, f)
}

type ApplicationUpdate struct {
	CompanyID *string `json:"company_id"`
	JobTitle  *string `json:"job_title"`
	JobURL    *string `json:"job_url"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
}

// Update applies a partial update. An edge from any non-Applied status
// into Applied triggers the applied side effects; the applied date is set
// only the first time.
func (s *ApplicationService) Update(userID, appID string, in ApplicationUpdate) (*model.Application, error) {
	app, err := s.ByID(userID, appID)
	if err != nil {
		return nil, err
	}

	if in.JobTitle != nil {
		if err := validation.ValidateJobTitle(*in.JobTitle); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
		app.JobTitle = strings.TrimSpace(*in.JobTitle)
	}
	if in.CompanyID != nil && *in.CompanyID != app.CompanyID {
		if _, err := s.companyRepository.ByID(userID, *in.CompanyID); err != nil {
			if errors.Is(err, repository.ErrCompanyNotFound) {
				return nil, fmt.Errorf("%w: company", ErrNotFound)
			}
			return nil, fmt.Errorf("failed to check company: %w", err)
		}
		app.CompanyID = *in.CompanyID
	}
	if in.JobURL != nil {
		app.JobURL = in.JobURL
	}
	if in.Notes != nil {
		app.Notes = in.Notes
	}

	becameApplied := false
	if in.Status != nil && *in.Status != app.Status {
		if !model.ValidStatus(*in.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *in.Status)
		}
		becameApplied = *in.Status == model.StatusApplied
		app.Status = *in.Status
	}

	if becameApplied && app.AppliedDate == nil {
		today := model.Today()
		app.AppliedDate = &today
	}
	app.UpdatedAt = time.Now().UTC()

	companyName := ""
	if becameApplied {
		company, err := s.companyRepository.ByID(userID, app.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("failed to load company: %w", err)
		}
		companyName = company.Name
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.applicationRepository.WithTx(tx).Update(app); err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	if becameApplied {
		if err := s.lifecycle.OnApplicationApplied(tx, app, companyName); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return app, nil
}

func (s *ApplicationService) Delete(userID, appID string) error {
	err := s.applicationRepository.Delete(userID, appID)
	if errors.Is(err, repository.ErrApplicationNotFound) {
		return ErrNotFound
	}
	return err
}

// BulkImportResult reports a CSV import row by row. Failed rows never
// block the rest of the file.
type BulkImportResult struct {
	Imported int               `json:"imported"`
	Failed   int               `json:"failed"`
	Errors   []BulkImportError `json:"errors"`
}

type BulkImportError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

var csvHeader = []string{"company_name", "job_title", "job_url", "status", "notes"}

// BulkImport reads applications from a CSV file with the header
// company_name,job_title,job_url,status,notes. Companies are found or
// created by name. Imported rows do not fire the applied side effects;
// bulk loads record history, not new activity.
func (s *ApplicationService) BulkImport(userID string, r io.Reader) (*BulkImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read CSV header", ErrInvalidInput)
	}
	if !validCSVHeader(header) {
		return nil, fmt.Errorf("%w: CSV header must be %s", ErrInvalidInput, strings.Join(csvHeader, ","))
	}

	result := &BulkImportResult{Errors: []BulkImportError{}}
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkImportError{Row: row, Message: "malformed CSV row"})
			continue
		}

		if err := s.importRow(userID, record); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkImportError{Row: row, Message: err.Error()})
			continue
		}
		result.Imported++
	}

	return result, nil
}

func (s *ApplicationService) importRow(userID string, record []string) error {
	if len(record) < 2 {
		return errors.New("company_name and job_title are required")
	}
	// Pad optional columns.
	for len(record) < len(csvHeader) {
		record = append(record, "")
	}

	companyName := strings.TrimSpace(record[0])
	jobTitle := strings.TrimSpace(record[1])
	jobURL := strings.TrimSpace(record[2])
	status := strings.TrimSpace(record[3])
	notes := strings.TrimSpace(record[4])

	if companyName == "" {
		return errors.New("company_name is required")
	}
	if err := validation.ValidateJobTitle(jobTitle); err != nil {
		return err
	}
	if status == "" {
		status = model.StatusPlanned
	}
	if !model.ValidStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}

	company, err := s.findOrCreateCompany(userID, companyName)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	app := &model.Application{
		ID:        uuid.NewString(),
		UserID:    userID,
		CompanyID: company.ID,
		JobTitle:  jobTitle,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if jobURL != "" {
		app.JobURL = &jobURL
	}
	if notes != "" {
		app.Notes = &notes
	}
	if status == model.StatusApplied {
		today := model.Today()
		app.AppliedDate = &today
	}

	return s.applicationRepository.Create(app)
}

func (s *ApplicationService) findOrCreateCompany(userID, name string) (*model.Company, error) {
	company, err := s.companyRepository.ByName(userID, name)
	if err == nil {
		return company, nil
	}
	if !errors.Is(err, repository.ErrCompanyNotFound) {
		return nil, err
	}

	company = &model.Company{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.companyRepository.Create(company); err != nil {
		return nil, err
	}
	return company, nil
}

func validCSVHeader(header []string) bool {
	if len(header) != len(csvHeader) {
		return false
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(h), csvHeader[i]) {
			return false
		}
	}
	return true
}
