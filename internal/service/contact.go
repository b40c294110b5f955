package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobbuddy/api/internal/hunter"
	"github.com/jobbuddy/api/internal/model"
	"github.com/jobbuddy/api/internal/repository"
	"github.com/jobbuddy/api/internal/validation"
)

const discoverLimit = 10

var (
	ErrDuplicateContact     = errors.New("a contact with this email already exists for this company")
	ErrNoCompanyDomain      = errors.New("company has no website to derive a domain from")
	ErrDiscoveryDisabled    = errors.New("contact discovery is not configured")
	ErrDiscoveryTimeout     = errors.New("contact discovery timed out")
	ErrDiscoveryQuota       = errors.New("contact discovery quota exceeded")
	ErrDiscoveryUnavailable = errors.New("contact discovery unavailable")
)

type ContactService struct {
	contactRepository repository.ContactRepository
	companyRepository repository.CompanyRepository
	hunter            *hunter.Client
}

func NewContactService(
	contactRepository repository.ContactRepository,
	companyRepository repository.CompanyRepository,
	hunterClient *hunter.Client,
) *ContactService {
	return &ContactService{
		contactRepository: contactRepository,
		companyRepository: companyRepository,
		hunter:            hunterClient,
	}
}

type ContactInput struct {
	CompanyID   string  `json:"company_id"`
	Name        string  `json:"name"`
	Email       *string `json:"email"`
	LinkedinURL *string `json:"linkedin_url"`
	Role        *string `json:"role"`
}

func (s *ContactService) Create(userID string, in ContactInput) (*model.Contact, error) {
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	if in.Email != nil && *in.Email != "" {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
	}

	if _, err := s.companyRepository.ByID(userID, in.CompanyID); err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return nil, fmt.Errorf("%w: company", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to check company: %w", err)
	}

	contact := &model.Contact{
		ID:          uuid.NewString(),
		UserID:      userID,
		CompanyID:   in.CompanyID,
		Name:        strings.TrimSpace(in.Name),
		Email:       in.Email,
		LinkedinURL: in.LinkedinURL,
		Role:        in.Role,
		Source:      model.ContactSourceManual,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.contactRepository.Create(contact); err != nil {
		if errors.Is(err, repository.ErrDuplicateContact) {
			return nil, ErrDuplicateContact
		}
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return contact, nil
}

func (s *ContactService) ByID(userID, contactID string) (*model.Contact, error) {
	contact, err := s.contactRepository.ByID(userID, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return contact, nil
}

func (s *ContactService) List(userID, companyID, search string, page, perPage int) ([]*model.Contact, int, error) {
	return s.contactRepository.List(userID, companyID, search, page, perPage)
}

func (s *ContactService) Update(userID, contactID string, in ContactInput) (*model.Contact, error) {
	contact, err := s.ByID(userID, contactID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		if err := validation.ValidateName(name); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
		contact.Name = name
	}
	if in.Email != nil {
		if *in.Email != "" {
			if err := validation.ValidateEmail(*in.Email); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
			}
		}
		contact.Email = in.Email
	}
	if in.LinkedinURL != nil {
		contact.LinkedinURL = in.LinkedinURL
	}
	if in.Role != nil {
		contact.Role = in.Role
	}

	if err := s.contactRepository.Update(contact); err != nil {
		if errors.Is(err, repository.ErrDuplicateContact) {
			return nil, ErrDuplicateContact
		}
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return contact, nil
}

func (s *ContactService) Delete(userID, contactID string) error {
	err := s.contactRepository.Delete(userID, contactID)
	if errors.Is(err, repository.ErrContactNotFound) {
		return ErrNotFound
	}
	return err
}

// Discover looks up contacts for the company's domain via Hunter.io and
// stores new ones with source API. Addresses already attached to the
// company are skipped, never duplicated. When no domain is given it is
// derived from the company website.
func (s *ContactService) Discover(ctx context.Context, userID, companyID, domain string) ([]*model.Contact, error) {
	if s.hunter == nil || !s.hunter.Configured() {
		return nil, ErrDiscoveryDisabled
	}

	company, err := s.companyRepository.ByID(userID, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return nil, fmt.Errorf("%w: company", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	domain = strings.TrimSpace(domain)
	if domain == "" {
		domain, err = companyDomain(company)
		if err != nil {
			return nil, err
		}
	}

	emails, err := s.hunter.DomainSearch(ctx, domain, discoverLimit)
	if err != nil {
		switch {
		case errors.Is(err, hunter.ErrTimeout):
			return nil, ErrDiscoveryTimeout
		case errors.Is(err, hunter.ErrQuotaExceeded):
			return nil, ErrDiscoveryQuota
		default:
			slog.Warn("contact discovery failed", "error", err, "domain", domain)
			return nil, ErrDiscoveryUnavailable
		}
	}

	created := []*model.Contact{}
	for _, e := range emails {
		if e.Value == "" {
			continue
		}
		if _, err := s.contactRepository.ByCompanyEmail(companyID, e.Value); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrContactNotFound) {
			return nil, fmt.Errorf("failed to check existing contact: %w", err)
		}

		name := strings.TrimSpace(e.FirstName + " " + e.LastName)
		if name == "" {
			name = e.Value
		}

		email := e.Value
		contact := &model.Contact{
			ID:        uuid.NewString(),
			UserID:    userID,
			CompanyID: companyID,
			Name:      name,
			Email:     &email,
			Source:    model.ContactSourceAPI,
			CreatedAt: time.Now().UTC(),
		}
		if e.Position != "" {
			role := e.Position
			contact.Role = &role
		}

		if err := s.contactRepository.Create(contact); err != nil {
			if errors.Is(err, repository.ErrDuplicateContact) {
				continue
			}
			return nil, fmt.Errorf("failed to store discovered contact: %w", err)
		}
		created = append(created, contact)
	}

	return created, nil
}

// companyDomain derives the search domain from the company website.
func companyDomain(company *model.Company) (string, error) {
	if company.Website == nil || strings.TrimSpace(*company.Website) == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidInput, ErrNoCompanyDomain.Error())
	}

	raw := strings.TrimSpace(*company.Website)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "", fmt.Errorf("%w: invalid company website", ErrInvalidInput)
	}
	return strings.TrimPrefix(u.Hostname(), "www."), nil
}
