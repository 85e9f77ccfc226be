package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindloop/habitpack/models"
)

func TestEvaluateCaseInsensitiveMatch(t *testing.T) {
	task := models.TaskDefinition{
		TaskType:      models.TaskMultipleChoice,
		CorrectAnswer: "Paris",
	}

	got := Evaluate(task, "paris")
	require.NotNil(t, got)
	assert.True(t, *got)

	got = Evaluate(task, "PARIS")
	require.NotNil(t, got)
	assert.True(t, *got)
}

func TestEvaluateWrongAnswer(t *testing.T) {
	task := models.TaskDefinition{
		TaskType:      models.TaskMultipleChoice,
		CorrectAnswer: "Paris",
	}

	got := Evaluate(task, "Lyon")
	require.NotNil(t, got)
	assert.False(t, *got)

	// exact equality only, no trimming or fuzz
	got = Evaluate(task, " paris ")
	require.NotNil(t, got)
	assert.False(t, *got)
}

func TestEvaluateOpenEndedTasksAreNotScored(t *testing.T) {
	for _, tt := range []models.TaskType{
		models.TaskTextInput,
		models.TaskGratitudeEntry,
		models.TaskPerspectiveShift,
		models.TaskMemorySequence,
		models.TaskBrainTeaser,
	} {
		task := models.TaskDefinition{TaskType: tt}
		assert.Nil(t, Evaluate(task, "anything"), "task type %s", tt)
	}
}
