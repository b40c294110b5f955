package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) Date {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return NewDate(t)
}

func TestStreakTouchFirstActivity(t *testing.T) {
	s := &Streak{}
	s.Touch(day("2025-03-17"))

	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 1, s.LongestStreak)
	assert.Equal(t, "2025-03-17", s.LastActivityDate.String())
}

func TestStreakTouchSameDayIsNoop(t *testing.T) {
	s := &Streak{}
	s.Touch(day("2025-03-17"))
	s.Touch(day("2025-03-17"))
	s.Touch(day("2025-03-17"))

	assert.Equal(t, 1, s.CurrentStreak)
}

func TestStreakTouchConsecutiveDaysExtend(t *testing.T) {
	s := &Streak{}
	s.Touch(day("2025-03-17"))
	s.Touch(day("2025-03-18"))
	s.Touch(day("2025-03-19"))

	assert.Equal(t, 3, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)
}

func TestStreakTouchGapResets(t *testing.T) {
	s := &Streak{}
	s.Touch(day("2025-03-17"))
	s.Touch(day("2025-03-18"))
	s.Touch(day("2025-03-21"))

	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 2, s.LongestStreak, "longest streak survives the reset")
	assert.Equal(t, "2025-03-21", s.LastActivityDate.String())
}
