package resolutions

import (
	"context"

	"github.com/jhoicas/resoluciones-facturador/internal/domain/resolution"
)

// RowReader entrega las filas crudas del archivo (o archivos) de entrada.
// Sin filas debe devolver domain.ErrNoInput.
type RowReader interface {
	ReadRows(ctx context.Context) ([]resolution.Row, error)
}
