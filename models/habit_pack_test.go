package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	pack := HabitPack{
		TasksPerDay: 2,
		TaskPool: TaskPool{
			{ID: "a", TaskType: TaskTextInput},
			{ID: "b", TaskType: TaskGratitudeEntry},
			{ID: "c", TaskType: TaskBrainTeaser},
		},
	}
	assert.NoError(t, pack.ValidateConfig())

	pack.TasksPerDay = 4
	err := pack.ValidateConfig()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))

	pack.TasksPerDay = 0
	err = pack.ValidateConfig()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestTaskPoolFind(t *testing.T) {
	pool := TaskPool{
		{ID: "a", Prompt: "first"},
		{ID: "b", Prompt: "second"},
	}

	got, ok := pool.Find("b")
	require.True(t, ok)
	assert.Equal(t, "second", got.Prompt)

	_, ok = pool.Find("nope")
	assert.False(t, ok)
}

func TestTaskPoolScanRoundTrip(t *testing.T) {
	pool := TaskPool{{ID: "a", Prompt: "p", TaskType: TaskMultipleChoice, Options: []string{"x"}, CorrectAnswer: "x"}}

	v, err := pool.Value()
	require.NoError(t, err)

	var decoded TaskPool
	require.NoError(t, decoded.Scan(v))
	assert.Equal(t, pool, decoded)
}
