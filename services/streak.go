package services

import (
	"sort"
	"time"

	"github.com/mindloop/habitpack/models"
)

// CurrentStreak derives the consecutive-day completion streak ending at the
// most recent completed day record. Walking backward from that day, each
// earlier completed record must be exactly one calendar day before the
// previous one; a gap of two or more days, or an incomplete day, ends the
// streak. An instance with no completed days has a streak of zero.
func CurrentStreak(records []models.DayRecord, loc *time.Location) int {
	days := make([]int, 0, len(records))
	for _, r := range records {
		if r.Completed {
			days = append(days, calendarDay(r.CreatedAt, loc))
		}
	}
	if len(days) == 0 {
		return 0
	}
	sort.Ints(days)

	streak := 1
	for i := len(days) - 1; i > 0; i-- {
		gap := days[i] - days[i-1]
		if gap == 0 {
			// duplicate date, should not happen; don't double count
			continue
		}
		if gap > 1 {
			break
		}
		streak++
	}
	return streak
}
