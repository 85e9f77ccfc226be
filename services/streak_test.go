package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mindloop/habitpack/models"
)

func dayRecord(day int, createdAt time.Time, completed bool) models.DayRecord {
	return models.DayRecord{Day: day, CreatedAt: createdAt, Completed: completed}
}

func TestCurrentStreakEmpty(t *testing.T) {
	assert.Equal(t, 0, CurrentStreak(nil, time.UTC))
	assert.Equal(t, 0, CurrentStreak([]models.DayRecord{}, time.UTC))
}

func TestCurrentStreakNoCompletedDays(t *testing.T) {
	mon := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	records := []models.DayRecord{
		dayRecord(1, mon, false),
		dayRecord(2, mon.AddDate(0, 0, 1), false),
	}
	assert.Equal(t, 0, CurrentStreak(records, time.UTC))
}

func TestCurrentStreakConsecutiveDays(t *testing.T) {
	mon := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	records := []models.DayRecord{
		dayRecord(1, mon, true),
		dayRecord(2, mon.AddDate(0, 0, 1), true),
		dayRecord(3, mon.AddDate(0, 0, 2), true),
	}
	assert.Equal(t, 3, CurrentStreak(records, time.UTC))
}

func TestCurrentStreakResetsAfterGap(t *testing.T) {
	// Mon-Wed completed, no Thursday record, Friday completed: streak is 1.
	mon := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	records := []models.DayRecord{
		dayRecord(1, mon, true),
		dayRecord(2, mon.AddDate(0, 0, 1), true),
		dayRecord(3, mon.AddDate(0, 0, 2), true),
		dayRecord(4, mon.AddDate(0, 0, 4), true), // Friday
	}
	assert.Equal(t, 1, CurrentStreak(records, time.UTC))
}

func TestCurrentStreakIncompleteDayBreaksChain(t *testing.T) {
	mon := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	records := []models.DayRecord{
		dayRecord(1, mon, true),
		dayRecord(2, mon.AddDate(0, 0, 1), false),
		dayRecord(3, mon.AddDate(0, 0, 2), true),
	}
	assert.Equal(t, 1, CurrentStreak(records, time.UTC))
}

func TestCurrentStreakAcrossMonthBoundary(t *testing.T) {
	records := []models.DayRecord{
		dayRecord(1, time.Date(2025, 5, 31, 23, 0, 0, 0, time.UTC), true),
		dayRecord(2, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC), true),
	}
	assert.Equal(t, 2, CurrentStreak(records, time.UTC))
}

func TestCurrentStreakUsesConfiguredZone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	assert.NoError(t, err)

	// 23:30 and next 00:30 UTC are the same calendar day in Tokyo.
	records := []models.DayRecord{
		dayRecord(1, time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC), true), // Jun 2 23:30 JST
		dayRecord(2, time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC), true), // Jun 3 00:30 JST
	}
	assert.Equal(t, 2, CurrentStreak(records, tokyo))
	assert.Equal(t, 1, CurrentStreak(records, time.UTC))
}
