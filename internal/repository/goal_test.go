package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobbuddy/api/internal/model"
)

func monday() model.Date {
	return model.NewDate(time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC))
}

func TestGoalGetOrCreate(t *testing.T) {
	conn := newTestDB(t)
	user := seedUser(t, conn)
	repo := NewGoalRepository(conn)

	goal, err := repo.GetOrCreate(user.ID, monday())
	require.NoError(t, err)
	assert.Equal(t, 0, goal.ApplicationsGoal)
	assert.Equal(t, 0, goal.ApplicationsCurrent)
	assert.Equal(t, "2025-03-17", goal.WeekStart.String())

	// Second call returns the same row, never a duplicate.
	again, err := repo.GetOrCreate(user.ID, monday())
	require.NoError(t, err)
	assert.Equal(t, goal.ID, again.ID)
}

func TestGoalWeeksAreIndependent(t *testing.T) {
	conn := newTestDB(t)
	user := seedUser(t, conn)
	repo := NewGoalRepository(conn)

	week1, err := repo.GetOrCreate(user.ID, monday())
	require.NoError(t, err)
	week2, err := repo.GetOrCreate(user.ID, monday().AddDays(7))
	require.NoError(t, err)

	assert.NotEqual(t, week1.ID, week2.ID)

	require.NoError(t, repo.IncrementApplications(user.ID, monday()))

	got1, err := repo.ByWeek(user.ID, monday())
	require.NoError(t, err)
	got2, err := repo.ByWeek(user.ID, monday().AddDays(7))
	require.NoError(t, err)
	assert.Equal(t, 1, got1.ApplicationsCurrent)
	assert.Equal(t, 0, got2.ApplicationsCurrent, "other weeks are untouched")
}

func TestGoalIncrementApplicationsIfExists(t *testing.T) {
	conn := newTestDB(t)
	user := seedUser(t, conn)
	repo := NewGoalRepository(conn)

	// No row yet: the increment is silently skipped.
	require.NoError(t, repo.IncrementApplicationsIfExists(user.ID, monday()))
	_, err := repo.ByWeek(user.ID, monday())
	assert.ErrorIs(t, err, ErrGoalNotFound)

	_, err = repo.GetOrCreate(user.ID, monday())
	require.NoError(t, err)

	require.NoError(t, repo.IncrementApplicationsIfExists(user.ID, monday()))
	goal, err := repo.ByWeek(user.ID, monday())
	require.NoError(t, err)
	assert.Equal(t, 1, goal.ApplicationsCurrent)
}

func TestGoalIncrementOutreachCreatesRow(t *testing.T) {
	conn := newTestDB(t)
	user := seedUser(t, conn)
	repo := NewGoalRepository(conn)

	require.NoError(t, repo.IncrementOutreach(user.ID, monday()))

	goal, err := repo.ByWeek(user.ID, monday())
	require.NoError(t, err)
	assert.Equal(t, 1, goal.OutreachCurrent)
	assert.Equal(t, 0, goal.OutreachGoal, "lazily created rows have zero targets")
}

func TestGoalUpdateTargets(t *testing.T) {
	conn := newTestDB(t)
	user := seedUser(t, conn)
	repo := NewGoalRepository(conn)

	goal, err := repo.GetOrCreate(user.ID, monday())
	require.NoError(t, err)

	goal.ApplicationsGoal = 10
	goal.OutreachGoal = 5
	require.NoError(t, repo.Update(goal))

	got, err := repo.ByWeek(user.ID, monday())
	require.NoError(t, err)
	assert.Equal(t, 10, got.ApplicationsGoal)
	assert.Equal(t, 5, got.OutreachGoal)
}
