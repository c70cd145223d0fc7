package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUndefinedTable verifica si un error es por tabla inexistente (42P01), típico de un search_path equivocado.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01" // undefined_table
	}
	return false
}

// wrapQueryError agrega contexto al error de una consulta del catálogo.
func wrapQueryError(op, table string, err error) error {
	if isUndefinedTable(err) {
		return fmt.Errorf("%s: la tabla %s no existe (revise BILLER_SCHE): %w", op, table, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
