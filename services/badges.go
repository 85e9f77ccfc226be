package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/mindloop/habitpack/models"
)

// BadgeService consumes day-completed and pack-completed events from the
// progress engine and awards badges. Awarding is idempotent: the unique
// (user_id, code) index plus FirstOrCreate make repeat events no-ops.
type BadgeService struct{}

// NewBadgeService creates the awarder.
func NewBadgeService() *BadgeService {
	return &BadgeService{}
}

// DayCompleted is invoked after a day record flips to completed, inside the
// same transaction.
func (b *BadgeService) DayCompleted(tx *gorm.DB, instance *models.UserPack) error {
	if err := b.award(tx, instance.UserID, models.BadgeFirstDay, "First Day Done"); err != nil {
		return err
	}
	if instance.CurrentStreak >= 7 {
		if err := b.award(tx, instance.UserID, models.BadgeWeekStreak, "Seven Day Streak"); err != nil {
			return err
		}
	}
	return nil
}

// PackCompleted is invoked when the instance transitions to completed.
func (b *BadgeService) PackCompleted(tx *gorm.DB, instance *models.UserPack) error {
	return b.award(tx, instance.UserID, models.BadgePackCompleted, "Pack Completed")
}

func (b *BadgeService) award(tx *gorm.DB, userID uint, code, name string) error {
	badge := models.Badge{UserID: userID, Code: code}
	return tx.Where(&models.Badge{UserID: userID, Code: code}).
		Attrs(models.Badge{Name: name, EarnedAt: time.Now()}).
		FirstOrCreate(&badge).Error
}
