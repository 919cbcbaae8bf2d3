package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// TxRunner scopes a unit of work to a single transaction. Implementations
// guarantee rollback on every exit path that does not commit.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(tx sqlx.ExtContext) error) error
}

type sqlxTxRunner struct {
	db *sqlx.DB
}

func NewTxRunner(database *sqlx.DB) TxRunner {
	return &sqlxTxRunner{db: database}
}

func (r *sqlxTxRunner) WithinTx(ctx context.Context, fn func(tx sqlx.ExtContext) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
