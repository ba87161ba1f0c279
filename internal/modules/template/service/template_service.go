package service

import (
	"context"
	"fmt"
	"strings"

	"ironlog/internal/modules/template/domain"
	templateout "ironlog/internal/modules/template/port/out"
	"ironlog/internal/platform/clock"
	"ironlog/internal/platform/id"
)

type TemplateService struct {
	clock clock.Clock
	idGen id.Generator
	store templateout.TemplateStore
}

func NewTemplateService(clock clock.Clock, idGen id.Generator, store templateout.TemplateStore) *TemplateService {
	return &TemplateService{clock: clock, idGen: idGen, store: store}
}

func (s *TemplateService) Create(ctx context.Context, name string, exercises []domain.TemplateExercise) (domain.WorkoutTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.WorkoutTemplate{}, fmt.Errorf("template name is required")
	}
	template := domain.WorkoutTemplate{
		ID:        s.idGen.New(),
		Name:      name,
		CreatedAt: s.clock.Now(),
	}
	for i, exercise := range exercises {
		exerciseName := strings.TrimSpace(exercise.Name)
		if exerciseName == "" {
			return domain.WorkoutTemplate{}, fmt.Errorf("exercise %d name is required", i+1)
		}
		template.Exercises = append(template.Exercises, domain.TemplateExercise{
			ID:         s.idGen.New(),
			TemplateID: template.ID,
			Name:       exerciseName,
			OrderIndex: i,
			UsesWeight: exercise.UsesWeight,
		})
	}
	if err := s.store.Save(ctx, template); err != nil {
		return domain.WorkoutTemplate{}, err
	}
	return template, nil
}

func (s *TemplateService) Duplicate(ctx context.Context, templateID, newName string) (domain.WorkoutTemplate, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return domain.WorkoutTemplate{}, fmt.Errorf("new template name is required")
	}
	original, err := s.store.Get(ctx, templateID)
	if err != nil {
		return domain.WorkoutTemplate{}, err
	}
	duplicate := domain.WorkoutTemplate{
		ID:        s.idGen.New(),
		Name:      newName,
		CreatedAt: s.clock.Now(),
	}
	for _, exercise := range original.Exercises {
		duplicate.Exercises = append(duplicate.Exercises, domain.TemplateExercise{
			ID:         s.idGen.New(),
			TemplateID: duplicate.ID,
			Name:       exercise.Name,
			OrderIndex: exercise.OrderIndex,
			UsesWeight: exercise.UsesWeight,
		})
	}
	if err := s.store.Save(ctx, duplicate); err != nil {
		return domain.WorkoutTemplate{}, err
	}
	return duplicate, nil
}
