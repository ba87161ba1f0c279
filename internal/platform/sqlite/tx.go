package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

type txKey struct{}

// DBTX is the subset of *sql.DB and *sql.Tx the store adapters use, so the
// same queries run inside or outside a managed transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager implements tx.Manager over a single SQLite handle. The open
// transaction rides the context so every store touched inside Within commits
// or rolls back together.
type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) Within(ctx context.Context, fn func(context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}
	txn, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(context.WithValue(ctx, txKey{}, txn)); err != nil {
		_ = txn.Rollback()
		return err
	}
	if err := txn.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Q returns the transaction bound to ctx when there is one, the raw handle
// otherwise.
func Q(ctx context.Context, db *sql.DB) DBTX {
	if txn, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return txn
	}
	return db
}
