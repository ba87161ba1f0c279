package dto

import "time"

type ExerciseSpec struct {
	Name       string
	Bodyweight bool
}

type CreateInput struct {
	Name      string
	Exercises []ExerciseSpec
}

type DuplicateInput struct {
	TemplateID string
	NewName    string
}

type ExerciseOutput struct {
	ID         string
	Name       string
	OrderIndex int
	UsesWeight bool
}

type TemplateOutput struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Exercises []ExerciseOutput
}
