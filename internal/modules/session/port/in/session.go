package in

import (
	"context"

	"ironlog/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Pause(ctx context.Context) (dto.StatusOutput, error)
	Resume(ctx context.Context) (dto.StatusOutput, error)
	Finish(ctx context.Context, input dto.FinishInput) (dto.FinishOutput, error)
	Abandon(ctx context.Context) error

	AddExercise(ctx context.Context, input dto.AddExerciseInput) (dto.ExerciseOutput, error)
	RemoveExercise(ctx context.Context, exerciseID string) error
	LogSet(ctx context.Context, input dto.LogSetInput) (dto.LogSetOutput, error)
	DeleteSet(ctx context.Context, setID string) error
	LastWeight(ctx context.Context, exerciseName string) (float64, bool, error)

	History(ctx context.Context, limit int) ([]dto.SessionSummaryOutput, error)
	Get(ctx context.Context, sessionID string) (dto.SessionDetailOutput, error)
}
