package out

import (
	"context"
	"time"

	"ironlog/internal/modules/session/domain"
)

type SessionStore interface {
	Save(ctx context.Context, session domain.WorkoutSession) error
	Get(ctx context.Context, sessionID string) (domain.WorkoutSession, error)
	List(ctx context.Context, limit int) ([]domain.WorkoutSession, error)
	SaveExercise(ctx context.Context, exercise domain.SessionExercise) error
	DeleteExercise(ctx context.Context, exerciseID string) error
	SaveSet(ctx context.Context, set domain.Set) error
	DeleteSet(ctx context.Context, setID string) error
	End(ctx context.Context, sessionID string, endedAt time.Time, durationSeconds int, notes string) error
	Delete(ctx context.Context, sessionID string) error
	LastWeight(ctx context.Context, exerciseName string) (float64, bool, error)
}

// AppStateStore is the persisted key-value state used to resume an
// interrupted session across launches.
type AppStateStore interface {
	ActiveSessionID(ctx context.Context) (string, error)
	SetActiveSessionID(ctx context.Context, sessionID string) error
	ClearActiveSessionID(ctx context.Context) error
	LastTemplateID(ctx context.Context) (string, error)
	SetLastTemplateID(ctx context.Context, templateID string) error
}
