package service

import (
	"context"
	"errors"
	"sync"

	"ironlog/internal/modules/timer/domain"
	timerout "ironlog/internal/modules/timer/port/out"
	"ironlog/internal/platform/clock"
	apperrors "ironlog/internal/platform/errors"
)

// TimerService owns timer transitions. Every transition mutates and persists
// under one lock, so the stored snapshot never disagrees with what a caller
// observed.
type TimerService struct {
	mu    sync.Mutex
	clock clock.Clock
	store timerout.StateStore
}

func NewTimerService(clock clock.Clock, store timerout.StateStore) *TimerService {
	return &TimerService{clock: clock, store: store}
}

func (s *TimerService) Start(ctx context.Context) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadOrInitial(ctx)
	if err != nil {
		return domain.State{}, err
	}
	next, err := state.Start(s.clock.Now())
	if err != nil {
		return domain.State{}, err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return domain.State{}, err
	}
	return next, nil
}

func (s *TimerService) Pause(ctx context.Context) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		return domain.State{}, err
	}
	next, err := state.Pause(s.clock.Now())
	if err != nil {
		return domain.State{}, err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return domain.State{}, err
	}
	return next, nil
}

func (s *TimerService) Resume(ctx context.Context) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		return domain.State{}, err
	}
	next, err := state.Resume(s.clock.Now())
	if err != nil {
		return domain.State{}, err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return domain.State{}, err
	}
	return next, nil
}

// Stop returns final elapsed seconds and clears the persisted state.
func (s *TimerService) Stop(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	elapsed := int(state.Elapsed(s.clock.Now()))
	if err := s.store.Clear(ctx); err != nil {
		return 0, err
	}
	return elapsed, nil
}

// Status is side-effect free and safe to poll.
func (s *TimerService) Status(ctx context.Context) (domain.State, int, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return domain.State{}, 0, err
	}
	return state, int(state.Elapsed(s.clock.Now())), nil
}

func (s *TimerService) loadOrInitial(ctx context.Context) (domain.State, error) {
	state, err := s.store.Load(ctx)
	if errors.Is(err, apperrors.ErrTimerNotStarted) {
		return domain.Initial(), nil
	}
	if err != nil {
		return domain.State{}, err
	}
	return state, nil
}
