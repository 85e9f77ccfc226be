package services

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/mindloop/habitpack/models"
)

// TaskSelector draws a day's task set from a template pool. It is a pure
// function over the pool and its randomness source; injecting a seeded
// *rand.Rand makes draws reproducible in tests.
type TaskSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewTaskSelector returns a selector backed by rng, or a time-seeded source
// when rng is nil.
func NewTaskSelector(rng *rand.Rand) *TaskSelector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &TaskSelector{rng: rng}
}

// Draw returns n distinct assignment snapshots from the pool, without
// replacement, in shuffled order (Fisher-Yates over an index slice). Each
// day's draw is independent, so repeats across days are expected.
func (s *TaskSelector) Draw(pool models.TaskPool, n int) (models.TaskAssignments, error) {
	if n < 1 || n > len(pool) {
		return nil, fmt.Errorf("%w: cannot draw %d tasks from a pool of %d",
			models.ErrInvalidConfiguration, n, len(pool))
	}

	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}

	s.mu.Lock()
	for i := len(idx) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	s.mu.Unlock()

	assignments := make(models.TaskAssignments, 0, n)
	for _, i := range idx[:n] {
		task := pool[i]
		options := make([]string, len(task.Options))
		copy(options, task.Options)
		assignments = append(assignments, models.TaskAssignment{
			TaskID:   task.ID,
			Prompt:   task.Prompt,
			TaskType: task.TaskType,
			Options:  options,
		})
	}
	return assignments, nil
}
