package service

import (
	"context"

	"ironlog/internal/modules/export/domain"
	exportout "ironlog/internal/modules/export/port/out"
)

type ExportService struct {
	source exportout.SessionSource
}

func NewExportService(source exportout.SessionSource) *ExportService {
	return &ExportService{source: source}
}

func (s *ExportService) JSON(ctx context.Context, sessionID string) (string, string, error) {
	session, err := s.source.Session(ctx, sessionID)
	if err != nil {
		return "", "", err
	}
	payload, err := domain.RenderJSON(session)
	if err != nil {
		return "", "", err
	}
	return domain.Filename(session, "json"), payload, nil
}

func (s *ExportService) CSV(ctx context.Context, sessionID string) (string, string, error) {
	session, err := s.source.Session(ctx, sessionID)
	if err != nil {
		return "", "", err
	}
	payload, err := domain.RenderCSV(session)
	if err != nil {
		return "", "", err
	}
	return domain.Filename(session, "csv"), payload, nil
}
