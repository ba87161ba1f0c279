package out_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"ironlog/internal/modules/timer/adapter/out"
	"ironlog/internal/modules/timer/domain"
	timerout "ironlog/internal/modules/timer/port/out"
	apperrors "ironlog/internal/platform/errors"
	"ironlog/internal/platform/sqlite"
)

func newStore(t *testing.T) (timerout.StateStore, *sql.DB) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(`CREATE TABLE app_state (key TEXT PRIMARY KEY, value TEXT)`); err != nil {
		t.Fatalf("create app_state: %v", err)
	}
	return out.NewSQLiteStateStore(db), db
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)
	ctx := context.Background()
	state := domain.State{
		Running:            true,
		Paused:             true,
		StartedAt:          time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		PausedAt:           time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		AccumulatedSeconds: 1800,
	}

	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != state {
		t.Fatalf("loaded = %+v, want %+v", loaded, state)
	}
}

func TestLoadWhenNeverStarted(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)
	if _, err := store.Load(context.Background()); !errors.Is(err, apperrors.ErrTimerNotStarted) {
		t.Fatalf("Load: err = %v, want ErrTimerNotStarted", err)
	}
}

func TestClearRemovesSnapshot(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)
	ctx := context.Background()
	state, _ := domain.Initial().Start(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, apperrors.ErrTimerNotStarted) {
		t.Fatalf("Load after clear: err = %v, want ErrTimerNotStarted", err)
	}
	// Clearing an empty store is fine.
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestSaveOverwritesPrevious(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)
	ctx := context.Background()
	started := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	state, _ := domain.Initial().Start(started)
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}
	paused, _ := state.Pause(started.Add(time.Minute))
	if err := store.Save(ctx, paused); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.Paused || loaded.AccumulatedSeconds != 60 {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestStoredRecordShape(t *testing.T) {
	t.Parallel()

	store, db := newStore(t)
	ctx := context.Background()
	state, _ := domain.Initial().Start(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var value string
	if err := db.QueryRow(`SELECT value FROM app_state WHERE key = 'timer_state'`).Scan(&value); err != nil {
		t.Fatalf("read raw row: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		t.Fatalf("decode raw row: %v", err)
	}
	for _, key := range []string{"is_running", "is_paused", "start_time", "pause_time", "accumulated_seconds"} {
		if _, ok := record[key]; !ok {
			t.Errorf("stored record missing key %q: %s", key, value)
		}
	}
	if record["is_running"] != true {
		t.Errorf("is_running = %v, want true", record["is_running"])
	}
	if record["pause_time"] != nil {
		t.Errorf("pause_time = %v, want null", record["pause_time"])
	}
}
