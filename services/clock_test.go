package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameCalendarDay(t *testing.T) {
	morning := time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC)
	night := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC)

	assert.True(t, SameCalendarDay(morning, night, time.UTC))
	assert.False(t, SameCalendarDay(night, nextDay, time.UTC))
}

func TestBeforeCalendarDay(t *testing.T) {
	night := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	nextMorning := time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC)

	// A two minute difference still crosses the boundary; this is calendar
	// equality, not a rolling 24h window.
	assert.True(t, BeforeCalendarDay(night, nextMorning, time.UTC))
	assert.False(t, BeforeCalendarDay(nextMorning, night, time.UTC))
	assert.False(t, BeforeCalendarDay(night, night, time.UTC))
}

func TestCalendarDayDependsOnZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 03:00 UTC is still the previous day in New York.
	a := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	b := time.Date(2025, 3, 11, 3, 0, 0, 0, time.UTC)

	assert.False(t, SameCalendarDay(a, b, time.UTC))
	assert.True(t, SameCalendarDay(a, b, ny))
}
