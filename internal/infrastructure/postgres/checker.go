package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// pinger lo implementa *pgxpool.Pool.
type pinger interface {
	Ping(ctx context.Context) error
}

// Checker comprueba que la base del facturador responde.
type Checker struct {
	runner *ReadOnlyRunner
	db     pinger
}

// NewChecker construye el verificador.
func NewChecker(db interface {
	pinger
	txBeginner
}) *Checker {
	return &Checker{runner: NewReadOnlyRunner(db), db: db}
}

// Check hace ping y ejecuta SELECT 1.
func (c *Checker) Check(ctx context.Context) error {
	if err := c.db.Ping(ctx); err != nil {
		return fmt.Errorf("ping DB: %w", err)
	}
	return c.runner.Run(ctx, func(tx pgx.Tx) error {
		var one int
		if err := tx.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
			return fmt.Errorf("select 1: %w", err)
		}
		if one != 1 {
			return fmt.Errorf("select 1: respuesta inesperada %d", one)
		}
		return nil
	})
}
