package services

import (
	"strings"

	"github.com/mindloop/habitpack/models"
)

// Evaluate scores a raw response against a pool task. Tasks without a
// canonical answer (free text, gratitude, memory games scored client-side)
// yield nil: correctness is unknown at this layer and only the payload is
// recorded. Tasks with a canonical answer are matched by case-insensitive
// exact string equality; no partial credit, no fuzzy matching.
func Evaluate(task models.TaskDefinition, response string) *bool {
	if task.CorrectAnswer == "" {
		return nil
	}
	correct := strings.EqualFold(response, task.CorrectAnswer)
	return &correct
}
