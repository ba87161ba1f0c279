package out

import (
	"context"

	exportdomain "ironlog/internal/modules/export/domain"
	exportout "ironlog/internal/modules/export/port/out"
	sessionin "ironlog/internal/modules/session/port/in"
)

// SessionUsecaseSource adapts the session module into the export view.
type SessionUsecaseSource struct {
	sessions sessionin.Usecase
}

func NewSessionUsecaseSource(sessions sessionin.Usecase) exportout.SessionSource {
	return &SessionUsecaseSource{sessions: sessions}
}

func (s *SessionUsecaseSource) Session(ctx context.Context, sessionID string) (exportdomain.Session, error) {
	detail, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return exportdomain.Session{}, err
	}
	session := exportdomain.Session{
		ID:              detail.SessionID,
		TemplateID:      detail.TemplateID,
		TemplateName:    detail.TemplateName,
		StartedAt:       detail.StartedAt,
		EndedAt:         detail.EndedAt,
		DurationSeconds: detail.DurationSeconds,
		Notes:           detail.Notes,
	}
	for _, exercise := range detail.Exercises {
		out := exportdomain.Exercise{
			Name:       exercise.Name,
			OrderIndex: exercise.OrderIndex,
			UsesWeight: exercise.UsesWeight,
		}
		for _, set := range exercise.Sets {
			out.Sets = append(out.Sets, exportdomain.Set{
				Reps:      set.Reps,
				Weight:    set.Weight,
				CreatedAt: set.CreatedAt,
			})
		}
		session.Exercises = append(session.Exercises, out)
	}
	return session, nil
}
