package usecase

import (
	"context"
	"strings"

	"ironlog/internal/modules/template/domain"
	"ironlog/internal/modules/template/dto"
	templatein "ironlog/internal/modules/template/port/in"
	templateout "ironlog/internal/modules/template/port/out"
	"ironlog/internal/modules/template/service"
	apperrors "ironlog/internal/platform/errors"
)

type Interactor struct {
	svc   *service.TemplateService
	store templateout.TemplateStore
}

func NewInteractor(svc *service.TemplateService, store templateout.TemplateStore) templatein.Usecase {
	return &Interactor{svc: svc, store: store}
}

func (i *Interactor) List(ctx context.Context) ([]dto.TemplateOutput, error) {
	templates, err := i.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TemplateOutput, 0, len(templates))
	for _, template := range templates {
		out = append(out, toOutput(template))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, templateID string) (dto.TemplateOutput, error) {
	if strings.TrimSpace(templateID) == "" {
		return dto.TemplateOutput{}, apperrors.ErrInvalidInput
	}
	template, err := i.store.Get(ctx, templateID)
	if err != nil {
		return dto.TemplateOutput{}, err
	}
	return toOutput(template), nil
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.TemplateOutput, error) {
	exercises := make([]domain.TemplateExercise, 0, len(input.Exercises))
	for _, spec := range input.Exercises {
		exercises = append(exercises, domain.TemplateExercise{Name: spec.Name, UsesWeight: !spec.Bodyweight})
	}
	template, err := i.svc.Create(ctx, input.Name, exercises)
	if err != nil {
		return dto.TemplateOutput{}, err
	}
	return toOutput(template), nil
}

func (i *Interactor) Delete(ctx context.Context, templateID string) error {
	if strings.TrimSpace(templateID) == "" {
		return apperrors.ErrInvalidInput
	}
	if _, err := i.store.Get(ctx, templateID); err != nil {
		return err
	}
	return i.store.Delete(ctx, templateID)
}

func (i *Interactor) Duplicate(ctx context.Context, input dto.DuplicateInput) (dto.TemplateOutput, error) {
	if strings.TrimSpace(input.TemplateID) == "" {
		return dto.TemplateOutput{}, apperrors.ErrInvalidInput
	}
	template, err := i.svc.Duplicate(ctx, input.TemplateID, input.NewName)
	if err != nil {
		return dto.TemplateOutput{}, err
	}
	return toOutput(template), nil
}

func toOutput(template domain.WorkoutTemplate) dto.TemplateOutput {
	out := dto.TemplateOutput{
		ID:        template.ID,
		Name:      template.Name,
		CreatedAt: template.CreatedAt,
	}
	for _, exercise := range template.Exercises {
		out.Exercises = append(out.Exercises, dto.ExerciseOutput{
			ID:         exercise.ID,
			Name:       exercise.Name,
			OrderIndex: exercise.OrderIndex,
			UsesWeight: exercise.UsesWeight,
		})
	}
	return out
}
