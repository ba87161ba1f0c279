package in

import (
	"context"

	sessiondto "ironlog/internal/modules/session/dto"
	sessionin "ironlog/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, templateID string, useLast bool) (sessiondto.StartOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{TemplateID: templateID, UseLast: useLast})
}

func (h CLIHandler) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Pause(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) Finish(ctx context.Context, notes string) (sessiondto.FinishOutput, error) {
	return h.usecase.Finish(ctx, sessiondto.FinishInput{Notes: notes})
}

func (h CLIHandler) Abandon(ctx context.Context) error {
	return h.usecase.Abandon(ctx)
}

func (h CLIHandler) AddExercise(ctx context.Context, name string, bodyweight bool) (sessiondto.ExerciseOutput, error) {
	return h.usecase.AddExercise(ctx, sessiondto.AddExerciseInput{Name: name, Bodyweight: bodyweight})
}

func (h CLIHandler) RemoveExercise(ctx context.Context, exerciseID string) error {
	return h.usecase.RemoveExercise(ctx, exerciseID)
}

func (h CLIHandler) LogSet(ctx context.Context, exerciseID string, reps int, weight *float64) (sessiondto.LogSetOutput, error) {
	return h.usecase.LogSet(ctx, sessiondto.LogSetInput{ExerciseID: exerciseID, Reps: reps, Weight: weight})
}

func (h CLIHandler) DeleteSet(ctx context.Context, setID string) error {
	return h.usecase.DeleteSet(ctx, setID)
}

func (h CLIHandler) LastWeight(ctx context.Context, exerciseName string) (float64, bool, error) {
	return h.usecase.LastWeight(ctx, exerciseName)
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]sessiondto.SessionSummaryOutput, error) {
	return h.usecase.History(ctx, limit)
}

func (h CLIHandler) Get(ctx context.Context, sessionID string) (sessiondto.SessionDetailOutput, error) {
	return h.usecase.Get(ctx, sessionID)
}
