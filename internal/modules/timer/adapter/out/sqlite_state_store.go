package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"ironlog/internal/modules/timer/domain"
	timerout "ironlog/internal/modules/timer/port/out"
	apperrors "ironlog/internal/platform/errors"
	"ironlog/internal/platform/sqlite"
)

const timerStateKey = "timer_state"

// SQLiteStateStore keeps the timer snapshot in the app_state key-value table
// so an interrupted session can be reconstructed on the next launch.
type SQLiteStateStore struct {
	db *sql.DB
}

func NewSQLiteStateStore(db *sql.DB) timerout.StateStore {
	return &SQLiteStateStore{db: db}
}

type stateRecord struct {
	IsRunning          bool    `json:"is_running"`
	IsPaused           bool    `json:"is_paused"`
	StartTime          *string `json:"start_time"`
	PauseTime          *string `json:"pause_time"`
	AccumulatedSeconds float64 `json:"accumulated_seconds"`
}

func (s *SQLiteStateStore) Save(ctx context.Context, state domain.State) error {
	payload, err := json.Marshal(toRecord(state))
	if err != nil {
		return fmt.Errorf("marshal timer state: %w", err)
	}
	const stmt = `
INSERT INTO app_state (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value;
`
	if _, err := sqlite.Q(ctx, s.db).ExecContext(ctx, stmt, timerStateKey, string(payload)); err != nil {
		return fmt.Errorf("save timer state: %w", err)
	}
	return nil
}

func (s *SQLiteStateStore) Load(ctx context.Context) (domain.State, error) {
	var value string
	err := sqlite.Q(ctx, s.db).QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, timerStateKey).Scan(&value)
	if err == sql.ErrNoRows {
		return domain.State{}, apperrors.ErrTimerNotStarted
	}
	if err != nil {
		return domain.State{}, fmt.Errorf("load timer state: %w", err)
	}
	var record stateRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return domain.State{}, fmt.Errorf("decode timer state: %w", err)
	}
	return fromRecord(record)
}

func (s *SQLiteStateStore) Clear(ctx context.Context) error {
	if _, err := sqlite.Q(ctx, s.db).ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, timerStateKey); err != nil {
		return fmt.Errorf("clear timer state: %w", err)
	}
	return nil
}

func toRecord(state domain.State) stateRecord {
	record := stateRecord{
		IsRunning:          state.Running,
		IsPaused:           state.Paused,
		AccumulatedSeconds: state.AccumulatedSeconds,
	}
	if !state.StartedAt.IsZero() {
		value := state.StartedAt.Format(time.RFC3339Nano)
		record.StartTime = &value
	}
	if !state.PausedAt.IsZero() {
		value := state.PausedAt.Format(time.RFC3339Nano)
		record.PauseTime = &value
	}
	return record
}

func fromRecord(record stateRecord) (domain.State, error) {
	state := domain.State{
		Running:            record.IsRunning,
		Paused:             record.IsPaused,
		AccumulatedSeconds: record.AccumulatedSeconds,
	}
	if record.StartTime != nil {
		parsed, err := time.Parse(time.RFC3339Nano, *record.StartTime)
		if err != nil {
			return domain.State{}, fmt.Errorf("parse timer start time: %w", err)
		}
		state.StartedAt = parsed
	}
	if record.PauseTime != nil {
		parsed, err := time.Parse(time.RFC3339Nano, *record.PauseTime)
		if err != nil {
			return domain.State{}, fmt.Errorf("parse timer pause time: %w", err)
		}
		state.PausedAt = parsed
	}
	return state, nil
}
