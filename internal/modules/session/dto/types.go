package dto

import "time"

type StartInput struct {
	TemplateID string
	// UseLast falls back to the most recently used template when no
	// TemplateID is given.
	UseLast bool
}

type StartOutput struct {
	SessionID    string
	TemplateName string
	StartedAt    time.Time
	Exercises    []ExerciseOutput
}

type SetOutput struct {
	ID        string
	SetNumber int
	Reps      int
	Weight    *float64
	CreatedAt time.Time
}

type ExerciseOutput struct {
	ID         string
	Name       string
	OrderIndex int
	UsesWeight bool
	Sets       []SetOutput
}

type StatusOutput struct {
	SessionID      string
	TemplateName   string
	StartedAt      time.Time
	TimerRunning   bool
	TimerPaused    bool
	ElapsedSeconds int
	ElapsedDisplay string
	Exercises      []ExerciseOutput
	TotalSets      int
	TotalReps      int
	TotalVolume    float64
}

type FinishInput struct {
	Notes string
}

type FinishOutput struct {
	SessionID       string
	TemplateName    string
	DurationSeconds int
	DurationDisplay string
	TotalSets       int
	TotalReps       int
	TotalVolume     float64
}

type AddExerciseInput struct {
	Name       string
	Bodyweight bool
}

type LogSetInput struct {
	ExerciseID string
	Reps       int
	Weight     *float64
}

type LogSetOutput struct {
	SetID        string
	ExerciseName string
	SetNumber    int
	Reps         int
	Weight       *float64
}

type SessionSummaryOutput struct {
	SessionID       string
	TemplateID      string
	TemplateName    string
	StartedAt       time.Time
	EndedAt         time.Time
	Active          bool
	DurationSeconds int
	DurationDisplay string
	TotalSets       int
	TotalReps       int
	TotalVolume     float64
}

type SessionDetailOutput struct {
	SessionSummaryOutput
	Notes     string
	Exercises []ExerciseOutput
}
