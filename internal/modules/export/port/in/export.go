package in

import (
	"context"

	"ironlog/internal/modules/export/dto"
)

type Usecase interface {
	JSON(ctx context.Context, sessionID, outDir string) (dto.ExportOutput, error)
	CSV(ctx context.Context, sessionID, outDir string) (dto.ExportOutput, error)
}
