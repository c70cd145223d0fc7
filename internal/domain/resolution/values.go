package resolution

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/resoluciones-facturador/internal/domain"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/entity"
)

// ValueTuple genera la tupla VALUES de la resolución en el orden de columnas del INSERT:
// (c_resolucion, c_empresa, c_origen, c_prefijo, n_resolucion, n_numero_inicial, n_numero_final,
// f_resolucion, f_vigencia_desde, f_vigencia_hasta, d_resolucion, llave_tecnica).
// Falla si falta el ID o el tipo de factura en lugar de escribir NULL.
func ValueTuple(r *entity.BillingResolution, company int64) (string, error) {
	if r.ID == nil {
		return "", domain.NewFieldError(domain.ErrMissingPrerequisite, "id", nil, "resolución "+r.Prefix+" sin identificador asignado")
	}
	if r.BillTypeID == nil {
		return "", domain.NewFieldError(domain.ErrMissingPrerequisite, "bill_type_id", nil, "resolución "+r.Prefix+" sin tipo de factura")
	}
	if r.TechnicalKey == "" {
		return "", domain.NewFieldError(domain.ErrMissingPrerequisite, FieldTechnicalKey, nil, "resolución "+r.Prefix+" sin clave técnica")
	}
	start := FormatTimestamp(r.StartDate)
	return fmt.Sprintf("(%d, %d, '%s', %d, %d, %d, %d, '%s', '%s', '%s', '%s', '%s')",
		*r.ID, company, r.DocType.Code(), *r.BillTypeID, r.ResolutionNumber,
		r.StartConsecutive, r.EndConsecutive,
		start, start, FormatTimestamp(r.EndDate),
		EscapeSQL(Description(r)), EscapeSQL(r.TechnicalKey),
	), nil
}

// FormatTimestamp formatea una fecha para un literal SQL.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// EscapeSQL duplica las comillas simples para un literal SQL.
func EscapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
