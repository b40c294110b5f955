package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jobbuddy/api/internal/model"
	"github.com/jobbuddy/api/internal/repository"
)

type OutreachService struct {
	db                    *sqlx.DB
	outreachRepository    repository.OutreachRepository
	contactRepository     repository.ContactRepository
	applicationRepository repository.ApplicationRepository
	companyRepository     repository.CompanyRepository
	lifecycle             *LifecycleService
}

func NewOutreachService(
	db *sqlx.DB,
	outreachRepository repository.OutreachRepository,
	contactRepository repository.ContactRepository,
	applicationRepository repository.ApplicationRepository,
	companyRepository repository.CompanyRepository,
	lifecycle *LifecycleService,
) *OutreachService {
	return &OutreachService{
		db:                    db,
		outreachRepository:    outreachRepository,
		contactRepository:     contactRepository,
		applicationRepository: applicationRepository,
		companyRepository:     companyRepository,
		lifecycle:             lifecycle,
	}
}

type OutreachInput struct {
	ApplicationID   *string    `json:"application_id"`
	CompanyID       *string    `json:"company_id"`
	ContactID       string     `json:"contact_id"`
	Channel         string     `json:"channel"`
	MessageTemplate *string    `json:"message_template"`
	SentDate        *time.Time `json:"sent_date"`
	FollowUpDate    *time.Time `json:"follow_up_date"`
	Status          string     `json:"status"`
}

func validChannel(c string) bool {
	return c == model.OutreachChannelEmail || c == model.OutreachChannelLinkedIn
}

func validOutreachStatus(s string) bool {
	switch s {
	case model.OutreachStatusSent, model.OutreachStatusResponded, model.OutreachStatusNoResponse:
		return true
	}
	return false
}

// Create logs an outreach activity and, in the same transaction, bumps
// the week's outreach counter and records the day's activity.
func (s *OutreachService) Create(userID string, in OutreachInput) (*model.OutreachActivity, error) {
	if (in.ApplicationID == nil) == (in.CompanyID == nil) {
		return nil, fmt.Errorf("%w: exactly one of application_id or company_id is required", ErrInvalidInput)
	}
	if !validChannel(in.Channel) {
		return nil, fmt.Errorf("%w: invalid channel %q", ErrInvalidInput, in.Channel)
	}
	status := in.Status
	if status == "" {
		status = model.OutreachStatusSent
	}
	if !validOutreachStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, in.Status)
	}

	if _, err := s.contactRepository.ByID(userID, in.ContactID); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, fmt.Errorf("%w: contact", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to check contact: %w", err)
	}
	if in.ApplicationID != nil {
		if _, err := s.applicationRepository.ByID(userID, *in.ApplicationID); err != nil {
			if errors.Is(err, repository.ErrApplicationNotFound) {
				return nil, fmt.Errorf("%w: application", ErrNotFound)
			}
			return nil, fmt.Errorf("failed to check application: %w", err)
		}
	}
	if in.CompanyID != nil {
		if _, err := s.companyRepository.ByID(userID, *in.CompanyID); err != nil {
			if errors.Is(err, repository.ErrCompanyNotFound) {
				return nil, fmt.Errorf("%w: company", ErrNotFound)
			}
			return nil, fmt.Errorf("failed to check company: %w", err)
		}
	}

	now := time.Now().UTC()
	sentDate := now
	if in.SentDate != nil {
		sentDate = in.SentDate.UTC()
	}

	activity := &model.OutreachActivity{
		ID:              uuid.NewString(),
		UserID:          userID,
		ApplicationID:   in.ApplicationID,
		CompanyID:       in.CompanyID,
		ContactID:       in.ContactID,
		Channel:         in.Channel,
		MessageTemplate: in.MessageTemplate,
		SentDate:        sentDate,
		FollowUpDate:    in.FollowUpDate,
		Status:          status,
		CreatedAt:       now,
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.outreachRepository.WithTx(tx).Create(activity); err != nil {
		return nil, fmt.Errorf("failed to create outreach activity: %w", err)
	}

	if err := s.lifecycle.OnOutreachLogged(tx, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return activity, nil
}

func (s *OutreachService) ByID(userID, activityID string) (*model.OutreachActivity, error) {
	activity, err := s.outreachRepository.ByID(userID, activityID)
	if err != nil {
		if errors.Is(err, repository.ErrOutreachNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get outreach activity: %w", err)
	}
	return activity, nil
}

func (s *OutreachService) List(userID string, f repository.OutreachFilter) ([]*model.OutreachActivity, int, error) {
	if f.Status != "" && !validOutreachStatus(f.Status) {
		return nil, 0, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, f.Status)
	}
	return s.outreachRepository.List(userID, f)
}

type OutreachUpdate struct {
	Channel         *string    `json:"channel"`
	MessageTemplate *string    `json:"message_template"`
	FollowUpDate    *time.Time `json:"follow_up_date"`
	Status          *string    `json:"status"`
}

// Update edits bookkeeping fields. The activity's anchor (application or
// company) and counters are immutable after creation.
func (s *OutreachService) Update(userID, activityID string, in OutreachUpdate) (*model.OutreachActivity, error) {
	activity, err := s.ByID(userID, activityID)
	if err != nil {
		return nil, err
	}

	if in.Channel != nil {
		if !validChannel(*in.Channel) {
			return nil, fmt.Errorf("%w: invalid channel %q", ErrInvalidInput, *in.Channel)
		}
		activity.Channel = *in.Channel
	}
	if in.Status != nil {
		if !validOutreachStatus(*in.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *in.Status)
		}
		activity.Status = *in.Status
	}
	if in.MessageTemplate != nil {
		activity.MessageTemplate = in.MessageTemplate
	}
	if in.FollowUpDate != nil {
		activity.FollowUpDate = in.FollowUpDate
	}

	if err := s.outreachRepository.Update(activity); err != nil {
		return nil, fmt.Errorf("failed to update outreach activity: %w", err)
	}
	return activity, nil
}

// Delete removes the activity. Counters already earned stay earned; the
// ledger records what happened that week.
func (s *OutreachService) Delete(userID, activityID string) error {
	err := s.outreachRepository.Delete(userID, activityID)
	if errors.Is(err, repository.ErrOutreachNotFound) {
		return ErrNotFound
	}
	return err
}
