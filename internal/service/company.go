package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobbuddy/api/internal/model"
	"github.com/jobbuddy/api/internal/repository"
)

type CompanyService struct {
	companyRepository repository.CompanyRepository
}

func NewCompanyService(companyRepository repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepository: companyRepository}
}

type CompanyInput struct {
	Name     string  `json:"name"`
	Website  *string `json:"website"`
	Location *string `json:"location"`
	Industry *string `json:"industry"`
	Notes    *string `json:"notes"`
}

func (s *CompanyService) Create(userID string, in CompanyInput) (*model.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}

	company := &model.Company{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Website:   in.Website,
		Location:  in.Location,
		Industry:  in.Industry,
		Notes:     in.Notes,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.companyRepository.Create(company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

func (s *CompanyService) ByID(userID, companyID string) (*model.Company, error) {
	company, err := s.companyRepository.ByID(userID, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

func (s *CompanyService) List(userID, search string, page, perPage int) ([]*model.Company, int, error) {
	return s.companyRepository.List(userID, search, page, perPage)
}

func (s *CompanyService) Update(userID, companyID string, in CompanyInput) (*model.Company, error) {
	company, err := s.ByID(userID, companyID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		company.Name = name
	}
	if in.Website != nil {
		company.Website = in.Website
	}
	if in.Location != nil {
		company.Location = in.Location
	}
	if in.Industry != nil {
		company.Industry = in.Industry
	}
	if in.Notes != nil {
		company.Notes = in.Notes
	}

	if err := s.companyRepository.Update(company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}

// Delete removes the company; its contacts and applications cascade.
func (s *CompanyService) Delete(userID, companyID string) error {
	err := s.companyRepository.Delete(userID, companyID)
	if errors.Is(err, repository.ErrCompanyNotFound) {
		return ErrNotFound
	}
	return err
}
