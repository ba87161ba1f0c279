package domain

import "time"

// WorkoutTemplate is a reusable workout plan.
type WorkoutTemplate struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Exercises []TemplateExercise
}

type TemplateExercise struct {
	ID         string
	TemplateID string
	Name       string
	OrderIndex int
	UsesWeight bool
}

func (t WorkoutTemplate) ExerciseCount() int {
	return len(t.Exercises)
}
