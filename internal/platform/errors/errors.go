package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")

	ErrTimerAlreadyRunning = errors.New("timer already running")
	ErrTimerNotRunning     = errors.New("timer not running")
	ErrTimerNotPaused      = errors.New("timer not paused")
	ErrTimerNotStarted     = errors.New("timer not started")
)
