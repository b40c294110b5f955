package service

import (
	"fmt"

	"github.com/jobbuddy/api/internal/model"
	"github.com/jobbuddy/api/internal/repository"
)

type StreakService struct {
	streakRepository repository.StreakRepository
}

func NewStreakService(streakRepository repository.StreakRepository) *StreakService {
	return &StreakService{streakRepository: streakRepository}
}

// Get returns the user's streak ledger, creating the zero row if the
// user somehow predates streak seeding.
func (s *StreakService) Get(userID string) (*model.Streak, error) {
	streak, err := s.streakRepository.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}
	return streak, nil
}
