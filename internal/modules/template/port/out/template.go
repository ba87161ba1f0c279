package out

import (
	"context"

	"ironlog/internal/modules/template/domain"
)

type TemplateStore interface {
	List(ctx context.Context) ([]domain.WorkoutTemplate, error)
	Get(ctx context.Context, templateID string) (domain.WorkoutTemplate, error)
	Save(ctx context.Context, template domain.WorkoutTemplate) error
	Delete(ctx context.Context, templateID string) error
}
