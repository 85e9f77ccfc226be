package services

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindloop/habitpack/models"
)

func testPool(n int) models.TaskPool {
	pool := make(models.TaskPool, 0, n)
	letters := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for i := 0; i < n; i++ {
		pool = append(pool, models.TaskDefinition{
			ID:       letters[i],
			Prompt:   "prompt " + letters[i],
			TaskType: models.TaskTextInput,
		})
	}
	return pool
}

func TestDrawReturnsDistinctTasks(t *testing.T) {
	selector := NewTaskSelector(rand.New(rand.NewSource(42)))
	pool := testPool(5)

	for i := 0; i < 50; i++ {
		got, err := selector.Draw(pool, 3)
		require.NoError(t, err)
		require.Len(t, got, 3)

		seen := map[string]bool{}
		for _, a := range got {
			assert.False(t, seen[a.TaskID], "task %s drawn twice", a.TaskID)
			seen[a.TaskID] = true
			_, inPool := pool.Find(a.TaskID)
			assert.True(t, inPool, "task %s not from pool", a.TaskID)
		}
	}
}

func TestDrawWholePool(t *testing.T) {
	selector := NewTaskSelector(rand.New(rand.NewSource(1)))
	pool := testPool(4)

	got, err := selector.Draw(pool, 4)
	require.NoError(t, err)
	require.Len(t, got, 4)

	seen := map[string]bool{}
	for _, a := range got {
		seen[a.TaskID] = true
	}
	assert.Len(t, seen, 4)
}

func TestDrawRejectsOversizedCount(t *testing.T) {
	selector := NewTaskSelector(rand.New(rand.NewSource(7)))

	_, err := selector.Draw(testPool(3), 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidConfiguration))

	_, err = selector.Draw(testPool(3), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidConfiguration))
}

func TestDrawIsDeterministicWithSeededSource(t *testing.T) {
	pool := testPool(6)

	a, err := NewTaskSelector(rand.New(rand.NewSource(99))).Draw(pool, 6)
	require.NoError(t, err)
	b, err := NewTaskSelector(rand.New(rand.NewSource(99))).Draw(pool, 6)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestDrawSnapshotsOptions(t *testing.T) {
	pool := models.TaskPool{{
		ID:       "mc",
		Prompt:   "pick one",
		TaskType: models.TaskMultipleChoice,
		Options:  []string{"x", "y"},
	}}
	selector := NewTaskSelector(rand.New(rand.NewSource(3)))

	got, err := selector.Draw(pool, 1)
	require.NoError(t, err)

	pool[0].Options[0] = "mutated"
	assert.Equal(t, []string{"x", "y"}, got[0].Options)
}
