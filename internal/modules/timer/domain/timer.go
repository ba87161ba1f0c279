package domain

import (
	"fmt"
	"time"

	apperrors "ironlog/internal/platform/errors"
)

// State is the persisted workout timer state. Elapsed time is always derived
// from wall-clock deltas against StartedAt, never from a counted tick loop,
// so a restored snapshot stays accurate across process suspension or death.
type State struct {
	Running            bool
	Paused             bool
	StartedAt          time.Time // zero when never started
	PausedAt           time.Time // zero unless paused
	AccumulatedSeconds float64   // time folded in before the current segment
}

func Initial() State {
	return State{}
}

// Started reports whether the timer has been started and not yet stopped.
func (s State) Started() bool {
	return s.Running
}

func (s State) Start(now time.Time) (State, error) {
	if s.Running {
		return State{}, apperrors.ErrTimerAlreadyRunning
	}
	return State{
		Running:   true,
		StartedAt: now,
	}, nil
}

func (s State) Pause(now time.Time) (State, error) {
	if !s.Running || s.Paused {
		return State{}, apperrors.ErrTimerNotRunning
	}
	return State{
		Running:            true,
		Paused:             true,
		StartedAt:          s.StartedAt,
		PausedAt:           now,
		AccumulatedSeconds: s.Elapsed(now),
	}, nil
}

func (s State) Resume(now time.Time) (State, error) {
	if !s.Running || !s.Paused {
		return State{}, apperrors.ErrTimerNotPaused
	}
	return State{
		Running:            true,
		StartedAt:          now, // new segment
		AccumulatedSeconds: s.AccumulatedSeconds,
	}, nil
}

// Elapsed returns total elapsed seconds as of now. Constant while paused or
// stopped, accumulated plus the live segment while running.
func (s State) Elapsed(now time.Time) float64 {
	if !s.Running || s.Paused || s.StartedAt.IsZero() {
		return s.AccumulatedSeconds
	}
	return s.AccumulatedSeconds + now.Sub(s.StartedAt).Seconds()
}

// FormatDuration renders seconds as m:ss, or h:mm:ss past the hour.
func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
