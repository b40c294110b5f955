package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobbuddy/api/internal/model"
	"github.com/jobbuddy/api/internal/repository"
	"github.com/jobbuddy/api/internal/week"
)

func currentWeekStart() model.Date {
	return model.NewDate(week.Start(time.Now().UTC()))
}

func TestAppliedApplicationRunsSideEffects(t *testing.T) {
	env := newTestEnv(t, false)
	user := env.registerUser(t)
	company := env.seedCompany(t, user.ID)

	app, err := env.applications.Create(user.ID, ApplicationInput{
		CompanyID: company.ID,
		JobTitle:  "Backend Engineer",
		Status:    model.StatusApplied,
	})
	require.NoError(t, err)
	require.NotNil(t, app.AppliedDate)
	assert.True(t, app.AppliedDate.Equal(model.Today().Time))

	goal, err := env.goals.ByWeek(user.ID, currentWeekStart())
	require.NoError(t, err)
	assert.Equal(t, 1, goal.ApplicationsCurrent)
	assert.Equal(t, 0, goal.OutreachCurrent)

	notifications, total, err := env.notifications.List(user.ID, repository.NotificationFilter{
		Type: model.NotificationFollowUp, Page: 1, PerPage: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.NotNil(t, notifications[0].RelatedID)
	assert.Equal(t, app.ID, *notifications[0].RelatedID)
	assert.Equal(t, "Follow up on application", notifications[0].Title)
	require.NotNil(t, notifications[0].Message)
	assert.Equal(t, "Remember to follow up on your application to "+company.Name+" for Backend Engineer", *notifications[0].Message)

	streak, err := env.streaks.ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.CurrentStreak)
	require.NotNil(t, streak.LastActivityDate)
	assert.True(t, streak.LastActivityDate.Equal(model.Today().Time))
}

func TestAppliedSkipsCounterWhenWeekRowMissing(t *testing.T) {
	env := newTestEnv(t, false)
	user := env.bareUser(t)
	company := env.seedCompany(t, user.ID)

	_, err := env.applications.Create(user.ID, ApplicationInput{
		CompanyID: company.ID,
		JobTitle:  "Backend Engineer",
		Status:    model.StatusApplied,
	})
	require.NoError(t, err)

	// No goal row gets created behind the user's back.
	_, err = env.goals.ByWeek(user.ID, currentWeekStart())
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)

	// The other effects still fire.
	_, total, err := env.notifications.List(user.ID, repository.NotificationFilter{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	streak, err := env.streaks.ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.CurrentStreak)
}

func TestAppliedLazilyCreatesWeekRowWhenEnabled(t *testing.T) {
	env := newTestEnv(t, true)
	user := env.bareUser(t)
	company := env.seedCompany(t, user.ID)

	_, err := env.applications.Create(user.ID, ApplicationInput{
		CompanyID: company.ID,
		JobTitle:  "Backend Engineer",
		Status:    model.StatusApplied,
	})
	require.NoError(t, err)

	goal, err := env.goals.ByWeek(user.ID, currentWeekStart())
	require.NoError(t, err)
	assert.Equal(t, 1, goal.ApplicationsCurrent)
}

func TestOutreachLoggedAlwaysCreatesWeekRow(t *testing.T) {
	env := newTestEnv(t, false)
	user := env.bareUser(t)

	tx, err := env.conn.Beginx()
	require.NoError(t, err)
	require.NoError(t, env.lifecycle.OnOutreachLogged(tx, user.ID))
	require.NoError(t, tx.Commit())

	goal, err := env.goals.ByWeek(user.ID, currentWeekStart())
	require.NoError(t, err)
	assert.Equal(t, 1, goal.OutreachCurrent)
	assert.Equal(t, 0, goal.ApplicationsCurrent)

	streak, err := env.streaks.ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.CurrentStreak)
}

func TestQuestCompletionAwardsPointsRepeatedly(t *testing.T) {
	env := newTestEnv(t, false)
	user := env.registerUser(t)

	points, err := env.goalService.CompleteQuest(user.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 25, points)

	// Completions are not deduplicated.
	points, err = env.goalService.CompleteQuest(user.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 25, points)

	streak, err := env.streaks.ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, streak.TotalPoints)
	assert.Equal(t, 1, streak.CurrentStreak)

	_, total, err := env.notifications.List(user.ID, repository.NotificationFilter{
		Type: model.NotificationMicroQuest, Page: 1, PerPage: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestUnknownQuestAwardsDefaultPoints(t *testing.T) {
	env := newTestEnv(t, false)
	user := env.registerUser(t)

	points, err := env.goalService.CompleteQuest(user.ID, 99)
	require.NoError(t, err)
	assert.Equal(t, 10, points)
}
