package in

import (
	"context"

	"ironlog/internal/modules/export/dto"
	exportin "ironlog/internal/modules/export/port/in"
)

type CLIHandler struct {
	usecase exportin.Usecase
}

func NewCLIHandler(usecase exportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) JSON(ctx context.Context, sessionID, outDir string) (dto.ExportOutput, error) {
	return h.usecase.JSON(ctx, sessionID, outDir)
}

func (h CLIHandler) CSV(ctx context.Context, sessionID, outDir string) (dto.ExportOutput, error) {
	return h.usecase.CSV(ctx, sessionID, outDir)
}
