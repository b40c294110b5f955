package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(time.Date(2025, 3, 17, 15, 4, 5, 0, time.UTC))

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-17"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(d.Time))
}

func TestDateScanAcceptsTimestamps(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2025-03-17 15:04:05"))
	assert.Equal(t, "2025-03-17", d.String())

	require.NoError(t, d.Scan(time.Date(2025, 3, 17, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-03-17", d.String())
}

func TestDateScanRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, d.Scan("not a date"))
	assert.Error(t, d.Scan(42))
}

func TestDaysSince(t *testing.T) {
	a := NewDate(time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, a.AddDays(1).DaysSince(a))
	assert.Equal(t, 0, a.DaysSince(a))
	assert.Equal(t, 7, a.AddDays(7).DaysSince(a))
}

func TestNewDateNormalizesZone(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*60*60)
	// 02:00 on the 18th in UTC+5 is still the 17th in UTC.
	d := NewDate(time.Date(2025, 3, 18, 2, 0, 0, 0, zone))
	assert.Equal(t, "2025-03-17", d.String())
}
