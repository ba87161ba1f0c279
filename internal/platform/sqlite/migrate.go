package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Migration is one forward-only schema change. Apply runs inside the same
// transaction that records the version, so a failure leaves the store at the
// last fully-applied version.
type Migration struct {
	Version int
	Name    string
	Apply   func(ctx context.Context, tx *sql.Tx) error
}

// Migrate applies every pending migration in ascending version order.
// Already-applied versions are never re-run; running twice is a no-op.
func Migrate(ctx context.Context, db *sql.DB, migrations []Migration) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at TIMESTAMP NOT NULL
);
`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	current, err := CurrentVersion(ctx, db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}
		if migration.Version != current+1 {
			return fmt.Errorf("migration %d (%s) out of order after version %d", migration.Version, migration.Name, current)
		}
		if err := applyOne(ctx, db, migration); err != nil {
			return fmt.Errorf("migration %d (%s): %w", migration.Version, migration.Name, err)
		}
		current = migration.Version
	}
	return nil
}

// CurrentVersion reports the highest applied schema version, 0 when the
// store has never been migrated.
func CurrentVersion(ctx context.Context, db *sql.DB) (int, error) {
	var name string
	err := db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'`).Scan(&name)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("check schema_version table: %w", err)
	}

	var version sql.NullInt64
	if err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}

func applyOne(ctx context.Context, db *sql.DB, migration Migration) error {
	txn, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := migration.Apply(ctx, txn); err != nil {
		_ = txn.Rollback()
		return err
	}
	if _, err := txn.ExecContext(ctx,
		`INSERT INTO schema_version (version, applied_at) VALUES (?, ?)`,
		migration.Version, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		_ = txn.Rollback()
		return fmt.Errorf("record version: %w", err)
	}
	if err := txn.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
