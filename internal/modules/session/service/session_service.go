package service

import (
	"context"
	"fmt"
	"strings"

	"ironlog/internal/modules/session/domain"
	sessionout "ironlog/internal/modules/session/port/out"
	"ironlog/internal/platform/clock"
	"ironlog/internal/platform/id"
)

// ExerciseSpec describes one exercise to seed into a new session.
type ExerciseSpec struct {
	Name       string
	UsesWeight bool
}

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
	store sessionout.SessionStore
}

func NewSessionService(clock clock.Clock, idGen id.Generator, store sessionout.SessionStore) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, store: store}
}

// Create persists a new active session, seeding exercises in order.
func (s *SessionService) Create(ctx context.Context, templateID, templateName string, exercises []ExerciseSpec) (domain.WorkoutSession, error) {
	session := domain.WorkoutSession{
		ID:           s.idGen.New(),
		TemplateID:   templateID,
		TemplateName: templateName,
		StartedAt:    s.clock.Now(),
	}
	for i, spec := range exercises {
		session.Exercises = append(session.Exercises, domain.SessionExercise{
			ID:         s.idGen.New(),
			SessionID:  session.ID,
			Name:       spec.Name,
			OrderIndex: i,
			UsesWeight: spec.UsesWeight,
		})
	}
	if err := s.store.Save(ctx, session); err != nil {
		return domain.WorkoutSession{}, err
	}
	for _, exercise := range session.Exercises {
		if err := s.store.SaveExercise(ctx, exercise); err != nil {
			return domain.WorkoutSession{}, err
		}
	}
	return session, nil
}

func (s *SessionService) AddExercise(ctx context.Context, session domain.WorkoutSession, name string, usesWeight bool) (domain.SessionExercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.SessionExercise{}, fmt.Errorf("exercise name is required")
	}
	exercise := domain.SessionExercise{
		ID:         s.idGen.New(),
		SessionID:  session.ID,
		Name:       name,
		OrderIndex: len(session.Exercises),
		UsesWeight: usesWeight,
	}
	if err := s.store.SaveExercise(ctx, exercise); err != nil {
		return domain.SessionExercise{}, err
	}
	return exercise, nil
}

func (s *SessionService) LogSet(ctx context.Context, exercise domain.SessionExercise, reps int, weight *float64) (domain.Set, error) {
	if reps <= 0 {
		return domain.Set{}, fmt.Errorf("reps must be positive")
	}
	if weight != nil && *weight < 0 {
		return domain.Set{}, fmt.Errorf("weight must be non-negative")
	}
	if !exercise.UsesWeight {
		weight = nil
	}
	set := domain.Set{
		ID:                s.idGen.New(),
		SessionExerciseID: exercise.ID,
		Reps:              reps,
		Weight:            weight,
		CreatedAt:         s.clock.Now(),
	}
	if err := s.store.SaveSet(ctx, set); err != nil {
		return domain.Set{}, err
	}
	return set, nil
}

// End stamps the session completed with its final duration.
func (s *SessionService) End(ctx context.Context, sessionID string, durationSeconds int, notes string) error {
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	return s.store.End(ctx, sessionID, s.clock.Now(), durationSeconds, notes)
}
