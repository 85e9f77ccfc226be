package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskType enumerates the task renderers supported by the frontend. The
// backend treats them opaquely except for answer checking.
type TaskType string

const (
	TaskTextInput        TaskType = "text-input"
	TaskMultipleChoice   TaskType = "multiple-choice"
	TaskMemorySequence   TaskType = "memory-sequence"
	TaskBrainTeaser      TaskType = "brain-teaser"
	TaskGratitudeEntry   TaskType = "gratitude-entry"
	TaskPerspectiveShift TaskType = "perspective-shift"
)

// TaskDefinition is one task inside a pack template's pool. CorrectAnswer is
// only meaningful for choice-style tasks and never leaves the server.
type TaskDefinition struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"prompt"`
	TaskType      TaskType `json:"task_type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	MinWords      int      `json:"min_words,omitempty"`
}

// TaskPool is a JSON column holding the template's full task pool.
type TaskPool []TaskDefinition

// Value implements driver.Valuer so gorm stores the pool as a JSON text column.
func (p TaskPool) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (p *TaskPool) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported task pool column type %T", src)
	}
}

// Find returns the pool task with the given id.
func (p TaskPool) Find(taskID string) (TaskDefinition, bool) {
	for _, t := range p {
		if t.ID == taskID {
			return t, true
		}
	}
	return TaskDefinition{}, false
}

// HabitPack is an immutable pack template: a pool of tasks plus pacing.
// Duration of 0 means the pack is open-ended and never completes on its own.
type HabitPack struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	TaskPool    TaskPool  `gorm:"type:text" json:"task_pool"`
	TasksPerDay int       `gorm:"not null" json:"tasks_per_day"`
	Duration    int       `gorm:"default:0" json:"duration"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns stable ids to pool tasks that lack one so assignments
// and submissions can reference tasks across template reloads.
func (h *HabitPack) BeforeCreate(tx *gorm.DB) error {
	for i := range h.TaskPool {
		if h.TaskPool[i].ID == "" {
			h.TaskPool[i].ID = uuid.NewString()
		}
	}
	return nil
}

// ValidateConfig checks that the pacing can be satisfied by the pool.
func (h *HabitPack) ValidateConfig() error {
	if h.TasksPerDay < 1 {
		return fmt.Errorf("%w: tasks_per_day must be positive", ErrInvalidConfiguration)
	}
	if h.TasksPerDay > len(h.TaskPool) {
		return fmt.Errorf("%w: tasks_per_day %d exceeds pool size %d",
			ErrInvalidConfiguration, h.TasksPerDay, len(h.TaskPool))
	}
	return nil
}
