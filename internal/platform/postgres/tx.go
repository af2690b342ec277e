package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrInvalidTransaction is returned when a Transaction was not created by BeginTx.
var ErrInvalidTransaction = errors.New("invalid transaction type")

// Transaction is the unit of work shared by repositories of different
// features so that one operation can span several tables.
type Transaction interface {
	Commit() error
	Rollback() error
}

type postgresTransaction struct {
	tx *sql.Tx
}

func (t *postgresTransaction) Commit() error {
	return t.tx.Commit()
}

func (t *postgresTransaction) Rollback() error {
	return t.tx.Rollback()
}

// BeginTx starts a read-committed transaction.
func BeginTx(ctx context.Context, db *sql.DB) (Transaction, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &postgresTransaction{tx: tx}, nil
}

// Unwrap returns the *sql.Tx behind a Transaction.
func Unwrap(tx Transaction) (*sql.Tx, error) {
	pt, ok := tx.(*postgresTransaction)
	if !ok {
		return nil, ErrInvalidTransaction
	}
	return pt.tx, nil
}

// RunInTx commits when fn succeeds and rolls back otherwise.
func RunInTx(ctx context.Context, begin func(context.Context) (Transaction, error), fn func(tx Transaction) error) error {
	tx, err := begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
