package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoTaskDay() DayRecord {
	return DayRecord{
		Day: 1,
		Tasks: TaskAssignments{
			{TaskID: "t1", Prompt: "one", TaskType: TaskTextInput},
			{TaskID: "t2", Prompt: "two", TaskType: TaskMultipleChoice, Options: []string{"a", "b"}},
		},
		CreatedAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
	}
}

func TestAddEntryCompletesWhenAllAnswered(t *testing.T) {
	rec := twoTaskDay()

	require.NoError(t, rec.AddEntry(Entry{TaskID: "t1", TaskType: TaskTextInput, Response: "hello"}))
	assert.False(t, rec.Completed)
	assert.Len(t, rec.Entries, 1)

	require.NoError(t, rec.AddEntry(Entry{TaskID: "t2", TaskType: TaskMultipleChoice, Response: "a"}))
	assert.True(t, rec.Completed)
	assert.Len(t, rec.Entries, 2)
}

func TestAddEntryRejectsDuplicateSubmission(t *testing.T) {
	rec := twoTaskDay()
	require.NoError(t, rec.AddEntry(Entry{TaskID: "t1", Response: "first"}))

	err := rec.AddEntry(Entry{TaskID: "t1", Response: "retry"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTaskAlreadyAnswered))

	// the ledger is untouched by the rejected append
	require.Len(t, rec.Entries, 1)
	assert.Equal(t, "first", rec.Entries[0].Response)
	assert.False(t, rec.Completed)
}

func TestAddEntryNeverExceedsAssignedCount(t *testing.T) {
	rec := DayRecord{
		Day:     1,
		Tasks:   TaskAssignments{{TaskID: "only"}},
		Entries: Entries{{TaskID: "only", Response: "done"}},
	}
	rec.Completed = true

	err := rec.AddEntry(Entry{TaskID: "extra"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Len(t, rec.Entries, 1)
}

func TestAssignmentLookup(t *testing.T) {
	rec := twoTaskDay()

	got, ok := rec.Assignment("t2")
	require.True(t, ok)
	assert.Equal(t, TaskMultipleChoice, got.TaskType)

	_, ok = rec.Assignment("missing")
	assert.False(t, ok)
}

func TestLatestDay(t *testing.T) {
	var pack UserPack
	assert.Nil(t, pack.LatestDay())

	pack.DayRecords = []DayRecord{{Day: 1}, {Day: 2}}
	latest := pack.LatestDay()
	require.NotNil(t, latest)
	assert.Equal(t, 2, latest.Day)
}
