package in

import (
	"context"

	"ironlog/internal/modules/template/dto"
	templatein "ironlog/internal/modules/template/port/in"
)

type CLIHandler struct {
	usecase templatein.Usecase
}

func NewCLIHandler(usecase templatein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.TemplateOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, templateID string) (dto.TemplateOutput, error) {
	return h.usecase.Get(ctx, templateID)
}

func (h CLIHandler) Create(ctx context.Context, name string, exercises []dto.ExerciseSpec) (dto.TemplateOutput, error) {
	return h.usecase.Create(ctx, dto.CreateInput{Name: name, Exercises: exercises})
}

func (h CLIHandler) Delete(ctx context.Context, templateID string) error {
	return h.usecase.Delete(ctx, templateID)
}

func (h CLIHandler) Duplicate(ctx context.Context, templateID, newName string) (dto.TemplateOutput, error) {
	return h.usecase.Duplicate(ctx, dto.DuplicateInput{TemplateID: templateID, NewName: newName})
}
