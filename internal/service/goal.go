package service

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jobbuddy/api/internal/model"
	"github.com/jobbuddy/api/internal/repository"
	"github.com/jobbuddy/api/internal/week"
)

type GoalService struct {
	db             *sqlx.DB
	goalRepository repository.GoalRepository
	lifecycle      *LifecycleService
}

func NewGoalService(db *sqlx.DB, goalRepository repository.GoalRepository, lifecycle *LifecycleService) *GoalService {
	return &GoalService{
		db:             db,
		goalRepository: goalRepository,
		lifecycle:      lifecycle,
	}
}

// Current returns the goal row for the current week, creating it with
// zero targets on first access after a week rollover.
func (s *GoalService) Current(userID string) (*model.Goal, error) {
	weekStart := model.NewDate(week.Start(time.Now().UTC()))
	goal, err := s.goalRepository.GetOrCreate(userID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to get current goal: %w", err)
	}
	return goal, nil
}

// SetTargets updates the current week's targets. Omitted targets keep
// their value and negative ones are clamped to zero. Counters are never
// touched here; only lifecycle events move them.
func (s *GoalService) SetTargets(userID string, applicationsGoal, outreachGoal *int) (*model.Goal, error) {
	goal, err := s.Current(userID)
	if err != nil {
		return nil, err
	}

	if applicationsGoal != nil {
		goal.ApplicationsGoal = max(0, *applicationsGoal)
	}
	if outreachGoal != nil {
		goal.OutreachGoal = max(0, *outreachGoal)
	}
	if err := s.goalRepository.Update(goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

// CompleteQuest runs the quest side effects in one transaction and
// returns the points awarded.
func (s *GoalService) CompleteQuest(userID string, questID int) (int, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	points, err := s.lifecycle.OnQuestCompleted(tx, userID, questID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return points, nil
}

// Quests returns the fixed quest catalog.
func (s *GoalService) Quests() []Quest {
	return Quests()
}
