package models

import "time"

// Badge codes awarded by the progress engine. The rules stay deliberately
// small; richer achievement logic lives outside this service.
const (
	BadgeFirstDay      = "first-day"
	BadgeWeekStreak    = "week-streak"
	BadgePackCompleted = "pack-completed"
)

// Badge records an achievement earned by a user. The (user_id, code) pair is
// unique so awarding is idempotent.
type Badge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null;uniqueIndex:idx_user_badge" json:"user_id"`
	Code      string    `gorm:"size:64;not null;uniqueIndex:idx_user_badge" json:"code"`
	Name      string    `gorm:"size:255" json:"name"`
	EarnedAt  time.Time `json:"earned_at"`
	CreatedAt time.Time `json:"created_at"`
}
