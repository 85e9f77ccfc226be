package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// UserPackStatus is the lifecycle state of a user's run through a template.
// "completed" is terminal.
type UserPackStatus string

const (
	PackInProgress UserPackStatus = "in-progress"
	PackCompleted  UserPackStatus = "completed"
)

// UserPack is one user's run through a HabitPack template. At most one
// in-progress instance may exist per user; start time enforces this under
// a lock on the user row, since the instance row does not exist yet.
type UserPack struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"index;not null" json:"user_id"`
	HabitPackID   uint           `gorm:"index;not null" json:"habit_pack_id"`
	Status        UserPackStatus `gorm:"size:16;index;default:'in-progress'" json:"status"`
	CurrentDay    int            `gorm:"default:1" json:"current_day"`
	CurrentStreak int            `gorm:"default:0" json:"current_streak"`
	LongestStreak int            `gorm:"default:0" json:"longest_streak"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	HabitPack     HabitPack      `json:"habit_pack,omitempty"`
	DayRecords    []DayRecord    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"day_records,omitempty"`
}

// TaskAssignment is an immutable snapshot of a pool task drawn for one day.
// It deliberately omits CorrectAnswer so the answer never reaches the client;
// scoring reads the template pool instead.
type TaskAssignment struct {
	TaskID   string   `json:"task_id"`
	Prompt   string   `json:"prompt"`
	TaskType TaskType `json:"task_type"`
	Options  []string `json:"options,omitempty"`
}

// Entry is one submitted response. IsCorrect is nil for open-ended task
// types where the server does not evaluate correctness.
type Entry struct {
	TaskID      string    `json:"task_id"`
	TaskType    TaskType  `json:"task_type"`
	Response    string    `json:"response"`
	IsCorrect   *bool     `json:"is_correct"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// TaskAssignments is a JSON column of the day's assigned tasks.
type TaskAssignments []TaskAssignment

func (a TaskAssignments) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *TaskAssignments) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("unsupported assignments column type %T", src)
	}
}

// Entries is a JSON column of submitted entries, append-only.
type Entries []Entry

func (e Entries) Value() (driver.Value, error) {
	if e == nil {
		return "[]", nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (e *Entries) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*e = nil
		return nil
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	default:
		return fmt.Errorf("unsupported entries column type %T", src)
	}
}

// DayRecord is the ledger entry for one calendar day of a pack instance:
// the tasks assigned that day plus the responses submitted against them.
// Completed is derived from entry count and only ever flips to true.
type DayRecord struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserPackID uint            `gorm:"index;not null" json:"user_pack_id"`
	Day        int             `gorm:"not null" json:"day"`
	Tasks      TaskAssignments `gorm:"type:text" json:"tasks"`
	Entries    Entries         `gorm:"type:text" json:"entries"`
	Completed  bool            `gorm:"default:false" json:"is_completed"`
	CreatedAt  time.Time       `json:"created_at"`
}

// HasEntry reports whether a response was already recorded for the task.
func (d *DayRecord) HasEntry(taskID string) bool {
	for _, e := range d.Entries {
		if e.TaskID == taskID {
			return true
		}
	}
	return false
}

// Assignment returns the day's assignment for the given task id.
func (d *DayRecord) Assignment(taskID string) (TaskAssignment, bool) {
	for _, t := range d.Tasks {
		if t.TaskID == taskID {
			return t, true
		}
	}
	return TaskAssignment{}, false
}

// AddEntry appends a response to the ledger. Duplicate submissions for the
// same task are rejected and the record is left untouched. The entry count
// never exceeds the assigned task count.
func (d *DayRecord) AddEntry(entry Entry) error {
	if d.HasEntry(entry.TaskID) {
		return ErrTaskAlreadyAnswered
	}
	if len(d.Entries) >= len(d.Tasks) {
		return fmt.Errorf("%w: day %d already has all entries", ErrConflict, d.Day)
	}
	d.Entries = append(d.Entries, entry)
	d.Completed = d.allAnswered()
	return nil
}

func (d *DayRecord) allAnswered() bool {
	return len(d.Tasks) > 0 && len(d.Entries) >= len(d.Tasks)
}

// LatestDay returns the most recent day record, or nil when none exist.
// Records are kept ordered by day index ascending.
func (u *UserPack) LatestDay() *DayRecord {
	if len(u.DayRecords) == 0 {
		return nil
	}
	return &u.DayRecords[len(u.DayRecords)-1]
}
