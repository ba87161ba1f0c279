package usecase

import (
	"context"

	"ironlog/internal/modules/timer/domain"
	"ironlog/internal/modules/timer/dto"
	timerin "ironlog/internal/modules/timer/port/in"
	"ironlog/internal/modules/timer/service"
)

type Interactor struct {
	svc *service.TimerService
}

func NewInteractor(svc *service.TimerService) timerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context) (dto.StatusOutput, error) {
	state, err := i.svc.Start(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return toStatus(state, 0), nil
}

func (i *Interactor) Pause(ctx context.Context) (dto.StatusOutput, error) {
	state, err := i.svc.Pause(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return toStatus(state, int(state.AccumulatedSeconds)), nil
}

func (i *Interactor) Resume(ctx context.Context) (dto.StatusOutput, error) {
	state, err := i.svc.Resume(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return toStatus(state, int(state.AccumulatedSeconds)), nil
}

func (i *Interactor) Stop(ctx context.Context) (dto.StopOutput, error) {
	elapsed, err := i.svc.Stop(ctx)
	if err != nil {
		return dto.StopOutput{}, err
	}
	return dto.StopOutput{ElapsedSeconds: elapsed, Display: domain.FormatDuration(elapsed)}, nil
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	state, elapsed, err := i.svc.Status(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return toStatus(state, elapsed), nil
}

func toStatus(state domain.State, elapsed int) dto.StatusOutput {
	return dto.StatusOutput{
		Running:        state.Running && !state.Paused,
		Paused:         state.Paused,
		ElapsedSeconds: elapsed,
		Display:        domain.FormatDuration(elapsed),
	}
}
