package out

import (
	"context"

	"ironlog/internal/modules/timer/domain"
)

// StateStore persists timer state on every transition so an interrupted
// session survives process restart. Load returns ErrTimerNotStarted when no
// state has been persisted.
type StateStore interface {
	Save(ctx context.Context, state domain.State) error
	Load(ctx context.Context) (domain.State, error)
	Clear(ctx context.Context) error
}
