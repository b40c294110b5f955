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

type OnboardingService struct {
	onboardingRepository repository.OnboardingRepository
}

func NewOnboardingService(onboardingRepository repository.OnboardingRepository) *OnboardingService {
	return &OnboardingService{onboardingRepository: onboardingRepository}
}

type OnboardingInput struct {
	TargetRole         string           `json:"target_role"`
	TargetIndustry     string           `json:"target_industry"`
	ExperienceLevel    string           `json:"experience_level"`
	DreamMilestone     string           `json:"dream_milestone"`
	Skills             model.StringList `json:"skills"`
	PreferredLocations model.StringList `json:"preferred_locations"`
	Availability       string           `json:"availability"`
}

// validate requires every answer: blank strings and absent lists are
// rejected, empty lists are allowed.
func (in OnboardingInput) validate() error {
	required := []struct {
		field string
		value string
	}{
		{"target_role", in.TargetRole},
		{"target_industry", in.TargetIndustry},
		{"experience_level", in.ExperienceLevel},
		{"dream_milestone", in.DreamMilestone},
		{"availability", in.Availability},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: missing required field: %s", ErrInvalidInput, r.field)
		}
	}
	if in.Skills == nil {
		return fmt.Errorf("%w: missing required field: skills", ErrInvalidInput)
	}
	if in.PreferredLocations == nil {
		return fmt.Errorf("%w: missing required field: preferred_locations", ErrInvalidInput)
	}
	return nil
}

// Submit stores the onboarding answers and marks the flow completed.
// Once completed the answers are frozen; resubmitting is forbidden.
func (s *OnboardingService) Submit(userID string, in OnboardingInput) (*model.OnboardingData, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.onboardingRepository.ByUserID(userID)
	if err != nil && !errors.Is(err, repository.ErrOnboardingNotFound) {
		return nil, fmt.Errorf("failed to check onboarding: %w", err)
	}
	if existing != nil && existing.Completed() {
		return nil, fmt.Errorf("%w: onboarding already completed", ErrForbidden)
	}

	id := uuid.NewString()
	if existing != nil {
		id = existing.ID
	}

	now := time.Now().UTC()
	data := &model.OnboardingData{
		ID:                 id,
		UserID:             userID,
		TargetRole:         strings.TrimSpace(in.TargetRole),
		TargetIndustry:     strings.TrimSpace(in.TargetIndustry),
		ExperienceLevel:    strings.TrimSpace(in.ExperienceLevel),
		DreamMilestone:     strings.TrimSpace(in.DreamMilestone),
		Skills:             in.Skills,
		PreferredLocations: in.PreferredLocations,
		Availability:       strings.TrimSpace(in.Availability),
		CompletedAt:        &now,
	}

	if err := s.onboardingRepository.Upsert(data); err != nil {
		return nil, fmt.Errorf("failed to save onboarding: %w", err)
	}
	return data, nil
}

// Get returns the user's onboarding answers, or ErrNotFound before the
// flow has been submitted.
func (s *OnboardingService) Get(userID string) (*model.OnboardingData, error) {
	data, err := s.onboardingRepository.ByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrOnboardingNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get onboarding: %w", err)
	}
	return data, nil
}
