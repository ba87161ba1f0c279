package in

import (
	"context"

	"ironlog/internal/modules/template/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.TemplateOutput, error)
	Get(ctx context.Context, templateID string) (dto.TemplateOutput, error)
	Create(ctx context.Context, input dto.CreateInput) (dto.TemplateOutput, error)
	Delete(ctx context.Context, templateID string) error
	Duplicate(ctx context.Context, input dto.DuplicateInput) (dto.TemplateOutput, error)
}
