package models

import "gorm.io/gorm"

// SeedDefaultPacks inserts the starter pack catalog when the habit_packs
// table is empty. Safe to call on every boot.
func SeedDefaultPacks(db *gorm.DB) error {
	var count int64
	if err := db.Model(&HabitPack{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	packs := []HabitPack{
		{
			Name:        "Morning Clarity",
			Description: "A 7-day pack of short mental warm-ups to start the day.",
			TasksPerDay: 3,
			Duration:    7,
			TaskPool: TaskPool{
				{Prompt: "Write down one intention for today.", TaskType: TaskTextInput, MinWords: 5},
				{Prompt: "Name three things you are grateful for.", TaskType: TaskGratitudeEntry, MinWords: 10},
				{Prompt: "What is the capital of France?", TaskType: TaskMultipleChoice, Options: []string{"Paris", "Lyon", "Marseille", "Nice"}, CorrectAnswer: "Paris"},
				{Prompt: "Memorize and repeat the color sequence.", TaskType: TaskMemorySequence},
				{Prompt: "A farmer has 17 sheep; all but 9 run away. How many are left?", TaskType: TaskBrainTeaser, CorrectAnswer: "9"},
				{Prompt: "Describe a recent frustration from the other person's point of view.", TaskType: TaskPerspectiveShift, MinWords: 20},
			},
		},
		{
			Name:        "Evening Wind-Down",
			Description: "An open-ended reflection routine for the end of the day.",
			TasksPerDay: 2,
			TaskPool: TaskPool{
				{Prompt: "What went well today?", TaskType: TaskGratitudeEntry, MinWords: 10},
				{Prompt: "What would you do differently tomorrow?", TaskType: TaskTextInput, MinWords: 10},
				{Prompt: "Which planet is known as the red planet?", TaskType: TaskMultipleChoice, Options: []string{"Venus", "Mars", "Jupiter"}, CorrectAnswer: "Mars"},
				{Prompt: "Recall the number sequence shown earlier.", TaskType: TaskMemorySequence},
			},
		},
	}

	for i := range packs {
		if err := db.Create(&packs[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
