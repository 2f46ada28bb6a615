package trm

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Manager implements a transaction manager using pgx.
type Manager struct {
	db *pgxpool.Pool
}

// New returns a new Transaction Manager
func New(db *pgxpool.Pool) *Manager {
	return &Manager{db: db}
}

type ctxKeyTx struct{}

// TxKey is the context key under which the active pgx.Tx is stored.
var TxKey = ctxKeyTx{}

// Do executes the provided function within a transaction context.
// A new transaction is started unless one already exists in the context.
// The transaction is rolled back on error or panic, committed otherwise.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	var tx pgx.Tx
	tx, ctx, err = m.getTransactionFromContext(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				fmt.Printf("failed to rollback tx after panic: %v\n", rbErr)
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				err = fmt.Errorf("failed to rollback tx: %v (original error: %w)", rbErr, err)
			}
		} else {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				err = fmt.Errorf("failed to commit tx: %w", commitErr)
			}
		}
	}()

	err = fn(ctx)

	return err
}

func (m *Manager) getTransactionFromContext(ctx context.Context) (pgx.Tx, context.Context, error) {
	if tx := ctx.Value(TxKey); tx != nil {
		if tx, ok := tx.(pgx.Tx); ok {
			return tx, ctx, nil
		}
		return nil, ctx, fmt.Errorf("invalid transaction type in context")
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to start new transaction: %w", err)
	}

	ctx = context.WithValue(ctx, TxKey, tx)

	return tx, ctx, nil
}
