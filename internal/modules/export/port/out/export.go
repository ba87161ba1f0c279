package out

import (
	"context"

	"ironlog/internal/modules/export/domain"
)

// SessionSource resolves a session into the export view.
type SessionSource interface {
	Session(ctx context.Context, sessionID string) (domain.Session, error)
}
