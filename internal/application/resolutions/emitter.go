package resolutions

import (
	"fmt"
	"strings"

	"github.com/jhoicas/resoluciones-facturador/internal/domain/resolution"
)

const (
	insertColumns = "(c_resolucion, c_empresa, c_origen, c_prefijo, n_resolucion, n_numero_inicial, n_numero_final, " +
		"f_resolucion, f_vigencia_desde, f_vigencia_hasta, d_resolucion, llave_tecnica)"

	insertTemplate          = "INSERT INTO %s\n%s\nVALUES\n%s;\n"
	closeOutTemplate        = "UPDATE %s SET f_vigencia_hasta = '%s' WHERE c_resolucion = %d;\n"
	returnedRewriteTemplate = "UPDATE %s SET n_resolucion = %d, f_resolucion = '%s', f_vigencia_desde = '%s', " +
		"f_vigencia_hasta = '%s', d_resolucion = '%s' WHERE c_resolucion = %d;\n"
)

// StatementEmitter convierte el plan en texto SQL con un orden fijo:
// cierres, reescrituras de devoluciones y un único INSERT multi-fila.
type StatementEmitter struct {
	table   string
	company int64
}

// NewStatementEmitter construye el emisor para la tabla y empresa dadas.
func NewStatementEmitter(table string, company int64) *StatementEmitter {
	return &StatementEmitter{table: table, company: company}
}

// Render genera las sentencias. Las secciones vacías se omiten y las demás se separan con una línea en blanco.
func (e *StatementEmitter) Render(plan *Plan) (string, error) {
	var sections []string

	if len(plan.CloseOuts) > 0 {
		var b strings.Builder
		for _, c := range plan.CloseOuts {
			fmt.Fprintf(&b, closeOutTemplate, e.table, resolution.FormatTimestamp(c.ValidTo), c.ResolutionID)
		}
		sections = append(sections, b.String())
	}

	if len(plan.Rewrites) > 0 {
		var b strings.Builder
		for _, r := range plan.Rewrites {
			start := resolution.FormatTimestamp(r.StartDate)
			fmt.Fprintf(&b, returnedRewriteTemplate, e.table, r.ResolutionNumber, start, start,
				resolution.FormatTimestamp(r.EndDate), resolution.EscapeSQL(r.Description), r.ResolutionID)
		}
		sections = append(sections, b.String())
	}

	if len(plan.Inserts) > 0 {
		tuples := make([]string, 0, len(plan.Inserts))
		for _, rec := range plan.Inserts {
			tuple, err := resolution.ValueTuple(rec, e.company)
			if err != nil {
				return "", err
			}
			tuples = append(tuples, tuple)
		}
		sections = append(sections, fmt.Sprintf(insertTemplate, e.table, insertColumns, strings.Join(tuples, ",\n")))
	}

	return strings.Join(sections, "\n"), nil
}
