package out

import (
	"context"
	"database/sql"
	"fmt"

	sessionout "ironlog/internal/modules/session/port/out"
	"ironlog/internal/platform/sqlite"
)

const (
	activeSessionKey = "active_session_id"
	lastTemplateKey  = "last_template_id"
)

// SQLiteAppStateStore persists resume state in the app_state key-value table.
type SQLiteAppStateStore struct {
	db *sql.DB
}

func NewSQLiteAppStateStore(db *sql.DB) sessionout.AppStateStore {
	return &SQLiteAppStateStore{db: db}
}

func (s *SQLiteAppStateStore) ActiveSessionID(ctx context.Context) (string, error) {
	return s.get(ctx, activeSessionKey)
}

func (s *SQLiteAppStateStore) SetActiveSessionID(ctx context.Context, sessionID string) error {
	return s.set(ctx, activeSessionKey, sessionID)
}

func (s *SQLiteAppStateStore) ClearActiveSessionID(ctx context.Context) error {
	return s.delete(ctx, activeSessionKey)
}

func (s *SQLiteAppStateStore) LastTemplateID(ctx context.Context) (string, error) {
	return s.get(ctx, lastTemplateKey)
}

func (s *SQLiteAppStateStore) SetLastTemplateID(ctx context.Context, templateID string) error {
	return s.set(ctx, lastTemplateKey, templateID)
}

func (s *SQLiteAppStateStore) get(ctx context.Context, key string) (string, error) {
	var value string
	err := sqlite.Q(ctx, s.db).QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get app state %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteAppStateStore) set(ctx context.Context, key, value string) error {
	const stmt = `
INSERT INTO app_state (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value;
`
	if _, err := sqlite.Q(ctx, s.db).ExecContext(ctx, stmt, key, value); err != nil {
		return fmt.Errorf("set app state %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteAppStateStore) delete(ctx context.Context, key string) error {
	if _, err := sqlite.Q(ctx, s.db).ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("clear app state %s: %w", key, err)
	}
	return nil
}
