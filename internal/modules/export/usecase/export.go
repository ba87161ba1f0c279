package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ironlog/internal/modules/export/dto"
	exportin "ironlog/internal/modules/export/port/in"
	"ironlog/internal/modules/export/service"
	apperrors "ironlog/internal/platform/errors"
)

type Interactor struct {
	svc       *service.ExportService
	exportDir string
}

// NewInteractor wires the export flow; exportDir is the default target when
// the caller gives none.
func NewInteractor(svc *service.ExportService, exportDir string) exportin.Usecase {
	return &Interactor{svc: svc, exportDir: exportDir}
}

func (i *Interactor) JSON(ctx context.Context, sessionID, outDir string) (dto.ExportOutput, error) {
	return i.export(ctx, sessionID, outDir, i.svc.JSON)
}

func (i *Interactor) CSV(ctx context.Context, sessionID, outDir string) (dto.ExportOutput, error) {
	return i.export(ctx, sessionID, outDir, i.svc.CSV)
}

func (i *Interactor) export(
	ctx context.Context,
	sessionID, outDir string,
	render func(context.Context, string) (string, string, error),
) (dto.ExportOutput, error) {
	if strings.TrimSpace(sessionID) == "" {
		return dto.ExportOutput{}, apperrors.ErrInvalidInput
	}
	filename, payload, err := render(ctx, sessionID)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	if outDir == "" {
		outDir = i.exportDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return dto.ExportOutput{}, fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(outDir, filename)
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		return dto.ExportOutput{}, fmt.Errorf("write export: %w", err)
	}
	return dto.ExportOutput{SessionID: sessionID, Path: path, Payload: payload}, nil
}
