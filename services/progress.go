package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mindloop/habitpack/models"
)

// ProgressService drives a user's progression through a habit pack: day
// advancement, response recording, and streak upkeep. Every operation runs
// in a transaction that first takes a row lock on the user's in-progress
// instance, so concurrent submissions (duplicate client retries included)
// are serialized per instance.
type ProgressService struct {
	db       *gorm.DB
	clock    Clock
	selector *TaskSelector
	loc      *time.Location
	badges   *BadgeService
}

// NewProgressService wires the progress engine. Nil clock, selector, or
// location fall back to system defaults.
func NewProgressService(db *gorm.DB, clock Clock, selector *TaskSelector, loc *time.Location) *ProgressService {
	if clock == nil {
		clock = SystemClock
	}
	if selector == nil {
		selector = NewTaskSelector(nil)
	}
	if loc == nil {
		loc = time.Local
	}
	return &ProgressService{
		db:       db,
		clock:    clock,
		selector: selector,
		loc:      loc,
		badges:   NewBadgeService(),
	}
}

// StartPack creates a new pack instance with day 1 already assigned. Fails
// with ErrConflict when an in-progress instance exists, ErrNotFound for an
// unknown user or template, and ErrInvalidConfiguration when the template's
// pacing cannot be satisfied by its pool.
func (s *ProgressService) StartPack(userID, packID uint) (*models.UserPack, error) {
	var created models.UserPack
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// The instance row being checked for does not exist yet, so a lock
		// on that query serializes nothing: two concurrent starts would both
		// see no row and both insert. Lock the user row instead; it always
		// exists and makes the check-then-create atomic per user.
		var owner models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&owner, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %d", models.ErrNotFound, userID)
			}
			return err
		}

		var existing models.UserPack
		err := tx.Where("user_id = ? AND status = ?", userID, models.PackInProgress).
			First(&existing).Error
		if err == nil {
			return fmt.Errorf("%w: a habit pack is already in progress", models.ErrConflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var tpl models.HabitPack
		if err := tx.First(&tpl, packID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: habit pack %d", models.ErrNotFound, packID)
			}
			return err
		}
		if err := tpl.ValidateConfig(); err != nil {
			return err
		}

		tasks, err := s.selector.Draw(tpl.TaskPool, tpl.TasksPerDay)
		if err != nil {
			return err
		}

		created = models.UserPack{
			UserID:      userID,
			HabitPackID: tpl.ID,
			Status:      models.PackInProgress,
			CurrentDay:  1,
			DayRecords: []models.DayRecord{{
				Day:       1,
				Tasks:     tasks,
				Entries:   models.Entries{},
				CreatedAt: s.clock.Now(),
			}},
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		created.HabitPack = tpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// TodayWork returns the current day record for the user's in-progress
// instance, creating the next day's record first when a calendar-day
// boundary has passed. Returns (nil, nil) when no pack is in progress.
// Calling it twice on the same calendar day is idempotent; the check and
// the create happen under the same instance lock.
func (s *ProgressService) TodayWork(userID uint) (*models.DayRecord, error) {
	var today *models.DayRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		instance, err := s.lockActiveInstance(tx, userID)
		if err != nil || instance == nil {
			return err
		}
		rec, err := s.ensureToday(tx, instance)
		if err != nil {
			return err
		}
		today = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return today, nil
}

// SubmitResponse records one response against today's assignments, scoring
// it when the task carries a canonical answer. A completed day advances the
// instance and may complete the pack. The response payload must already be
// sanitized by the caller.
func (s *ProgressService) SubmitResponse(userID uint, taskID, response string) (*models.DayRecord, error) {
	var updated models.DayRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		instance, err := s.lockActiveInstance(tx, userID)
		if err != nil {
			return err
		}
		if instance == nil {
			return fmt.Errorf("%w: no habit pack in progress", models.ErrNotFound)
		}

		rec := instance.LatestDay()
		if rec == nil {
			return fmt.Errorf("%w: instance has no day record", models.ErrNotFound)
		}
		assignment, ok := rec.Assignment(taskID)
		if !ok {
			return fmt.Errorf("%w: task %s is not among today's assignments", models.ErrNotFound, taskID)
		}

		entry := models.Entry{
			TaskID:      taskID,
			TaskType:    assignment.TaskType,
			Response:    response,
			SubmittedAt: s.clock.Now(),
		}
		// The canonical answer lives only on the template. The assignment
		// snapshot keeps the submission valid even if the pool changed after
		// the day was dealt; a response that can no longer be scored is
		// recorded with an unknown result.
		if task, ok := instance.HabitPack.TaskPool.Find(taskID); ok {
			entry.IsCorrect = Evaluate(task, response)
		}
		if err := rec.AddEntry(entry); err != nil {
			return err
		}

		if err := tx.Model(&models.DayRecord{}).Where("id = ?", rec.ID).
			Updates(map[string]interface{}{
				"entries":   rec.Entries,
				"completed": rec.Completed,
			}).Error; err != nil {
			return err
		}

		if rec.Completed {
			if err := s.onDayCompleted(tx, instance); err != nil {
				return err
			}
		}
		updated = *rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UserStats aggregates progression facts across all of a user's instances.
type UserStats struct {
	CurrentStreak  int `json:"current_streak"`
	LongestStreak  int `json:"longest_streak"`
	CompletedPacks int `json:"completed_packs"`
	ActivePacks    int `json:"active_packs"`
}

// Stats is a read-only aggregate over all of the user's pack instances,
// completed ones included. The longest streak never decreases because it is
// persisted per instance at day-completion time.
func (s *ProgressService) Stats(userID uint) (*UserStats, error) {
	var instances []models.UserPack
	if err := s.db.Where("user_id = ?", userID).Find(&instances).Error; err != nil {
		return nil, err
	}

	stats := &UserStats{}
	for _, in := range instances {
		switch in.Status {
		case models.PackInProgress:
			stats.ActivePacks++
			stats.CurrentStreak = in.CurrentStreak
		case models.PackCompleted:
			stats.CompletedPacks++
		}
		if in.LongestStreak > stats.LongestStreak {
			stats.LongestStreak = in.LongestStreak
		}
	}
	return stats, nil
}

// ActiveInstance loads the user's in-progress instance with template and day
// records, without locking. Returns (nil, nil) when none exists.
func (s *ProgressService) ActiveInstance(userID uint) (*models.UserPack, error) {
	var instance models.UserPack
	err := s.db.Where("user_id = ? AND status = ?", userID, models.PackInProgress).
		Preload("HabitPack").First(&instance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.db.Where("user_pack_id = ?", instance.ID).
		Order("day ASC").Find(&instance.DayRecords).Error; err != nil {
		return nil, err
	}
	return &instance, nil
}

// Location exposes the calendar time zone the service operates in.
func (s *ProgressService) Location() *time.Location { return s.loc }

// lockActiveInstance loads the user's in-progress instance under a
// SELECT ... FOR UPDATE row lock, then its template and ordered day records.
// Only the instance row is locked; it is the single serialization point for
// all ledger mutations of that instance.
func (s *ProgressService) lockActiveInstance(tx *gorm.DB, userID uint) (*models.UserPack, error) {
	var instance models.UserPack
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND status = ?", userID, models.PackInProgress).
		First(&instance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := tx.First(&instance.HabitPack, instance.HabitPackID).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("user_pack_id = ?", instance.ID).
		Order("day ASC").Find(&instance.DayRecords).Error; err != nil {
		return nil, err
	}
	return &instance, nil
}

// ensureToday returns the day record for the current calendar day, creating
// the next one when the latest record is from an earlier date. Exactly one
// boundary is processed per call: after five idle days the day index still
// advances by one, missed days are skipped silently.
func (s *ProgressService) ensureToday(tx *gorm.DB, instance *models.UserPack) (*models.DayRecord, error) {
	now := s.clock.Now()
	latest := instance.LatestDay()
	if latest != nil && !BeforeCalendarDay(latest.CreatedAt, now, s.loc) {
		return latest, nil
	}

	tasks, err := s.selector.Draw(instance.HabitPack.TaskPool, instance.HabitPack.TasksPerDay)
	if err != nil {
		return nil, err
	}

	day := 1
	if latest != nil {
		day = latest.Day + 1
	}
	rec := models.DayRecord{
		UserPackID: instance.ID,
		Day:        day,
		Tasks:      tasks,
		Entries:    models.Entries{},
		CreatedAt:  now,
	}
	if err := tx.Create(&rec).Error; err != nil {
		return nil, err
	}
	instance.DayRecords = append(instance.DayRecords, rec)
	return instance.LatestDay(), nil
}

// onDayCompleted recomputes streaks, advances the day counter, and
// transitions the instance to completed when a bounded pack runs out of
// days. Runs inside the caller's transaction.
func (s *ProgressService) onDayCompleted(tx *gorm.DB, instance *models.UserPack) error {
	instance.CurrentStreak = CurrentStreak(instance.DayRecords, s.loc)
	if instance.CurrentStreak > instance.LongestStreak {
		instance.LongestStreak = instance.CurrentStreak
	}
	instance.CurrentDay++

	packDone := instance.HabitPack.Duration > 0 && instance.CurrentDay > instance.HabitPack.Duration
	if packDone {
		instance.Status = models.PackCompleted
	}

	if err := tx.Model(&models.UserPack{}).Where("id = ?", instance.ID).
		Updates(map[string]interface{}{
			"current_day":    instance.CurrentDay,
			"current_streak": instance.CurrentStreak,
			"longest_streak": instance.LongestStreak,
			"status":         instance.Status,
		}).Error; err != nil {
		return err
	}

	if err := s.badges.DayCompleted(tx, instance); err != nil {
		return err
	}
	if packDone {
		if err := s.badges.PackCompleted(tx, instance); err != nil {
			return err
		}
	}
	return nil
}
