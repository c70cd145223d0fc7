package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// txBeginner lo implementa *pgxpool.Pool.
type txBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// ReadOnlyRunner ejecuta cada consulta en su propia transacción de solo lectura.
// La transacción se cierra siempre, haya error o no.
type ReadOnlyRunner struct {
	db txBeginner
}

// NewReadOnlyRunner construye el runner con el pool.
func NewReadOnlyRunner(db txBeginner) *ReadOnlyRunner {
	return &ReadOnlyRunner{db: db}
}

// Run inicia una transacción de solo lectura, ejecuta fn y hace Commit o Rollback.
func (r *ReadOnlyRunner) Run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
