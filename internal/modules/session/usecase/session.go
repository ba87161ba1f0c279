package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ironlog/internal/modules/session/domain"
	sessiondto "ironlog/internal/modules/session/dto"
	sessionin "ironlog/internal/modules/session/port/in"
	sessionout "ironlog/internal/modules/session/port/out"
	"ironlog/internal/modules/session/service"
	templatein "ironlog/internal/modules/template/port/in"
	timerdomain "ironlog/internal/modules/timer/domain"
	timerdto "ironlog/internal/modules/timer/dto"
	timerin "ironlog/internal/modules/timer/port/in"
	apperrors "ironlog/internal/platform/errors"
	"ironlog/internal/platform/tx"
)

type Interactor struct {
	svc       *service.SessionService
	templates templatein.Usecase
	timer     timerin.Usecase
	store     sessionout.SessionStore
	state     sessionout.AppStateStore
	txm       tx.Manager
}

func NewInteractor(
	svc *service.SessionService,
	templates templatein.Usecase,
	timer timerin.Usecase,
	store sessionout.SessionStore,
	state sessionout.AppStateStore,
	txm tx.Manager,
) sessionin.Usecase {
	return &Interactor{svc: svc, templates: templates, timer: timer, store: store, state: state, txm: txm}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	activeID, err := i.state.ActiveSessionID(ctx)
	if err != nil {
		return sessiondto.StartOutput{}, err
	}
	if activeID != "" {
		return sessiondto.StartOutput{}, apperrors.ErrActiveSessionExists
	}

	templateID := input.TemplateID
	if templateID == "" && input.UseLast {
		templateID, err = i.state.LastTemplateID(ctx)
		if err != nil {
			return sessiondto.StartOutput{}, err
		}
		if templateID == "" {
			return sessiondto.StartOutput{}, fmt.Errorf("no previous template: %w", apperrors.ErrNotFound)
		}
	}

	var templateName string
	var specs []service.ExerciseSpec
	if templateID != "" {
		template, err := i.templates.Get(ctx, templateID)
		if err != nil {
			return sessiondto.StartOutput{}, err
		}
		templateName = template.Name
		for _, exercise := range template.Exercises {
			specs = append(specs, service.ExerciseSpec{Name: exercise.Name, UsesWeight: exercise.UsesWeight})
		}
	}

	var session domain.WorkoutSession
	err = i.txm.Within(ctx, func(ctx context.Context) error {
		created, err := i.svc.Create(ctx, templateID, templateName, specs)
		if err != nil {
			return err
		}
		session = created
		if err := i.state.SetActiveSessionID(ctx, session.ID); err != nil {
			return err
		}
		if templateID != "" {
			if err := i.state.SetLastTemplateID(ctx, templateID); err != nil {
				return err
			}
		}
		_, err = i.timer.Start(ctx)
		return err
	})
	if err != nil {
		return sessiondto.StartOutput{}, err
	}

	return sessiondto.StartOutput{
		SessionID:    session.ID,
		TemplateName: session.TemplateName,
		StartedAt:    session.StartedAt,
		Exercises:    toExerciseOutputs(session.Exercises),
	}, nil
}

func (i *Interactor) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	session, err := i.active(ctx)
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	timerStatus, err := i.timer.Status(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrTimerNotStarted) {
		return sessiondto.StatusOutput{}, err
	}
	return toStatusOutput(session, timerStatus), nil
}

func (i *Interactor) Pause(ctx context.Context) (sessiondto.StatusOutput, error) {
	session, err := i.active(ctx)
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	timerStatus, err := i.timer.Pause(ctx)
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	return toStatusOutput(session, timerStatus), nil
}

func (i *Interactor) Resume(ctx context.Context) (sessiondto.StatusOutput, error) {
	session, err := i.active(ctx)
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	timerStatus, err := i.timer.Resume(ctx)
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	return toStatusOutput(session, timerStatus), nil
}

func (i *Interactor) Finish(ctx context.Context, input sessiondto.FinishInput) (sessiondto.FinishOutput, error) {
	session, err := i.active(ctx)
	if err != nil {
		return sessiondto.FinishOutput{}, err
	}

	var duration int
	err = i.txm.Within(ctx, func(ctx context.Context) error {
		stopped, err := i.timer.Stop(ctx)
		if err != nil && !errors.Is(err, apperrors.ErrTimerNotStarted) {
			return err
		}
		duration = stopped.ElapsedSeconds
		if err := i.svc.End(ctx, session.ID, duration, input.Notes); err != nil {
			return err
		}
		return i.state.ClearActiveSessionID(ctx)
	})
	if err != nil {
		return sessiondto.FinishOutput{}, err
	}

	return sessiondto.FinishOutput{
		SessionID:       session.ID,
		TemplateName:    session.TemplateName,
		DurationSeconds: duration,
		DurationDisplay: timerdomain.FormatDuration(duration),
		TotalSets:       session.TotalSets(),
		TotalReps:       session.TotalReps(),
		TotalVolume:     session.TotalVolume(),
	}, nil
}

func (i *Interactor) Abandon(ctx context.Context) error {
	session, err := i.active(ctx)
	if err != nil {
		return err
	}
	return i.txm.Within(ctx, func(ctx context.Context) error {
		if _, err := i.timer.Stop(ctx); err != nil && !errors.Is(err, apperrors.ErrTimerNotStarted) {
			return err
		}
		if err := i.store.Delete(ctx, session.ID); err != nil {
			return err
		}
		return i.state.ClearActiveSessionID(ctx)
	})
}

func (i *Interactor) AddExercise(ctx context.Context, input sessiondto.AddExerciseInput) (sessiondto.ExerciseOutput, error) {
	session, err := i.active(ctx)
	if err != nil {
		return sessiondto.ExerciseOutput{}, err
	}
	exercise, err := i.svc.AddExercise(ctx, session, input.Name, !input.Bodyweight)
	if err != nil {
		return sessiondto.ExerciseOutput{}, err
	}
	return toExerciseOutput(exercise), nil
}

func (i *Interactor) RemoveExercise(ctx context.Context, exerciseID string) error {
	session, err := i.active(ctx)
	if err != nil {
		return err
	}
	if _, err := findExercise(session, exerciseID); err != nil {
		return err
	}
	return i.store.DeleteExercise(ctx, exerciseID)
}

func (i *Interactor) LogSet(ctx context.Context, input sessiondto.LogSetInput) (sessiondto.LogSetOutput, error) {
	session, err := i.active(ctx)
	if err != nil {
		return sessiondto.LogSetOutput{}, err
	}
	exercise, err := findExercise(session, input.ExerciseID)
	if err != nil {
		return sessiondto.LogSetOutput{}, err
	}
	set, err := i.svc.LogSet(ctx, exercise, input.Reps, input.Weight)
	if err != nil {
		return sessiondto.LogSetOutput{}, err
	}
	return sessiondto.LogSetOutput{
		SetID:        set.ID,
		ExerciseName: exercise.Name,
		SetNumber:    len(exercise.Sets) + 1,
		Reps:         set.Reps,
		Weight:       set.Weight,
	}, nil
}

func (i *Interactor) DeleteSet(ctx context.Context, setID string) error {
	session, err := i.active(ctx)
	if err != nil {
		return err
	}
	for _, exercise := range session.Exercises {
		for _, set := range exercise.Sets {
			if set.ID == setID {
				return i.store.DeleteSet(ctx, setID)
			}
		}
	}
	return fmt.Errorf("set %s: %w", setID, apperrors.ErrNotFound)
}

func (i *Interactor) LastWeight(ctx context.Context, exerciseName string) (float64, bool, error) {
	if strings.TrimSpace(exerciseName) == "" {
		return 0, false, apperrors.ErrInvalidInput
	}
	return i.store.LastWeight(ctx, exerciseName)
}

func (i *Interactor) History(ctx context.Context, limit int) ([]sessiondto.SessionSummaryOutput, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("history limit must be positive: %w", apperrors.ErrInvalidInput)
	}
	sessions, err := i.store.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.SessionSummaryOutput, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toSummaryOutput(session))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, sessionID string) (sessiondto.SessionDetailOutput, error) {
	if strings.TrimSpace(sessionID) == "" {
		return sessiondto.SessionDetailOutput{}, apperrors.ErrInvalidInput
	}
	session, err := i.store.Get(ctx, sessionID)
	if err != nil {
		return sessiondto.SessionDetailOutput{}, err
	}
	return sessiondto.SessionDetailOutput{
		SessionSummaryOutput: toSummaryOutput(session),
		Notes:                session.Notes,
		Exercises:            toExerciseOutputs(session.Exercises),
	}, nil
}

func (i *Interactor) active(ctx context.Context) (domain.WorkoutSession, error) {
	activeID, err := i.state.ActiveSessionID(ctx)
	if err != nil {
		return domain.WorkoutSession{}, err
	}
	if activeID == "" {
		return domain.WorkoutSession{}, apperrors.ErrNoActiveSession
	}
	session, err := i.store.Get(ctx, activeID)
	if err != nil {
		return domain.WorkoutSession{}, err
	}
	return session, nil
}

func findExercise(session domain.WorkoutSession, exerciseID string) (domain.SessionExercise, error) {
	for _, exercise := range session.Exercises {
		if exercise.ID == exerciseID {
			return exercise, nil
		}
	}
	return domain.SessionExercise{}, fmt.Errorf("exercise %s: %w", exerciseID, apperrors.ErrNotFound)
}

func toStatusOutput(session domain.WorkoutSession, timerStatus timerdto.StatusOutput) sessiondto.StatusOutput {
	return sessiondto.StatusOutput{
		SessionID:      session.ID,
		TemplateName:   session.TemplateName,
		StartedAt:      session.StartedAt,
		TimerRunning:   timerStatus.Running,
		TimerPaused:    timerStatus.Paused,
		ElapsedSeconds: timerStatus.ElapsedSeconds,
		ElapsedDisplay: timerdomain.FormatDuration(timerStatus.ElapsedSeconds),
		Exercises:      toExerciseOutputs(session.Exercises),
		TotalSets:      session.TotalSets(),
		TotalReps:      session.TotalReps(),
		TotalVolume:    session.TotalVolume(),
	}
}

func toSummaryOutput(session domain.WorkoutSession) sessiondto.SessionSummaryOutput {
	return sessiondto.SessionSummaryOutput{
		SessionID:       session.ID,
		TemplateID:      session.TemplateID,
		TemplateName:    session.TemplateName,
		StartedAt:       session.StartedAt,
		EndedAt:         session.EndedAt,
		Active:          session.IsActive(),
		DurationSeconds: session.DurationSeconds,
		DurationDisplay: timerdomain.FormatDuration(session.DurationSeconds),
		TotalSets:       session.TotalSets(),
		TotalReps:       session.TotalReps(),
		TotalVolume:     session.TotalVolume(),
	}
}

func toExerciseOutputs(exercises []domain.SessionExercise) []sessiondto.ExerciseOutput {
	out := make([]sessiondto.ExerciseOutput, 0, len(exercises))
	for _, exercise := range exercises {
		out = append(out, toExerciseOutput(exercise))
	}
	return out
}

func toExerciseOutput(exercise domain.SessionExercise) sessiondto.ExerciseOutput {
	out := sessiondto.ExerciseOutput{
		ID:         exercise.ID,
		Name:       exercise.Name,
		OrderIndex: exercise.OrderIndex,
		UsesWeight: exercise.UsesWeight,
	}
	for n, set := range exercise.Sets {
		out.Sets = append(out.Sets, sessiondto.SetOutput{
			ID:        set.ID,
			SetNumber: n + 1,
			Reps:      set.Reps,
			Weight:    set.Weight,
			CreatedAt: set.CreatedAt,
		})
	}
	return out
}
