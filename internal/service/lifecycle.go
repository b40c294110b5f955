package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jobbuddy/api/internal/model"
	"github.com/jobbuddy/api/internal/repository"
	"github.com/jobbuddy/api/internal/week"
)

// LifecycleService runs the side effects that hang off domain events:
// goal counters, streak updates, points, and notifications. Every method
// takes the caller's transaction so an event and its effects commit or
// roll back together.
type LifecycleService struct {
	goalRepository         repository.GoalRepository
	streakRepository       repository.StreakRepository
	notificationRepository repository.NotificationRepository
	lazyCreateGoalOnApply  bool
}

func NewLifecycleService(
	goalRepository repository.GoalRepository,
	streakRepository repository.StreakRepository,
	notificationRepository repository.NotificationRepository,
	lazyCreateGoalOnApply bool,
) *LifecycleService {
	return &LifecycleService{
		goalRepository:         goalRepository,
		streakRepository:       streakRepository,
		notificationRepository: notificationRepository,
		lazyCreateGoalOnApply:  lazyCreateGoalOnApply,
	}
}

// OnApplicationApplied fires whenever an application's status changes
// into Applied from any other status, on create or update. It bumps the
// current week's applications counter, schedules a follow-up reminder,
// and records the day's activity for the streak. A later edge back into
// Applied fires again.
func (s *LifecycleService) OnApplicationApplied(tx *sqlx.Tx, app *model.Application, companyName string) error {
	now := time.Now().UTC()
	weekStart := model.NewDate(week.Start(now))

	goals := s.goalRepository.WithTx(tx)
	if s.lazyCreateGoalOnApply {
		if err := goals.IncrementApplications(app.UserID, weekStart); err != nil {
			return fmt.Errorf("failed to bump applications counter: %w", err)
		}
	} else {
		if err := goals.IncrementApplicationsIfExists(app.UserID, weekStart); err != nil {
			return fmt.Errorf("failed to bump applications counter: %w", err)
		}
	}

	msg := fmt.Sprintf("Remember to follow up on your application to %s for %s", companyName, app.JobTitle)
	relatedType := "application"
	n := repository.NewNotification(uuid.NewString(), app.UserID, model.NotificationFollowUp,
		"Follow up on application", &msg, &relatedType, &app.ID)
	if err := s.notificationRepository.WithTx(tx).Create(n); err != nil {
		return fmt.Errorf("failed to create follow-up notification: %w", err)
	}

	if err := s.touchStreak(tx, app.UserID); err != nil {
		return err
	}

	return nil
}

// OnOutreachLogged bumps the current week's outreach counter and records
// the day's activity. Unlike applications, outreach always creates the
// goal row when it is missing.
func (s *LifecycleService) OnOutreachLogged(tx *sqlx.Tx, userID string) error {
	weekStart := model.NewDate(week.Start(time.Now().UTC()))

	if err := s.goalRepository.WithTx(tx).IncrementOutreach(userID, weekStart); err != nil {
		return fmt.Errorf("failed to bump outreach counter: %w", err)
	}

	return s.touchStreak(tx, userID)
}

// OnQuestCompleted awards the quest's points, emits a micro-quest
// notification, and records the day's activity. Completions are not
// deduplicated; repeating a quest awards points again.
func (s *LifecycleService) OnQuestCompleted(tx *sqlx.Tx, userID string, questID int) (int, error) {
	points := QuestPoints(questID)

	// Touch first so the row exists before the points bump.
	if err := s.touchStreak(tx, userID); err != nil {
		return 0, err
	}

	if err := s.streakRepository.WithTx(tx).AddPoints(userID, points); err != nil {
		return 0, fmt.Errorf("failed to add quest points: %w", err)
	}

	msg := fmt.Sprintf("You earned %d points for completing a quest!", points)
	relatedType := "goal"
	n := repository.NewNotification(uuid.NewString(), userID, model.NotificationMicroQuest,
		"Quest Completed!", &msg, &relatedType, nil)
	if err := s.notificationRepository.WithTx(tx).Create(n); err != nil {
		return 0, fmt.Errorf("failed to create quest notification: %w", err)
	}

	return points, nil
}

// touchStreak applies the daily-activity rule inside the caller's
// transaction.
func (s *LifecycleService) touchStreak(tx *sqlx.Tx, userID string) error {
	streaks := s.streakRepository.WithTx(tx)

	streak, err := streaks.GetOrCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to load streak: %w", err)
	}

	streak.Touch(model.Today())

	if err := streaks.Update(streak); err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}
	return nil
}
