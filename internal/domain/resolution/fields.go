package resolution

import (
	"sort"

	"github.com/jhoicas/resoluciones-facturador/internal/domain"
)

// Row es una fila cruda del archivo de entrada con su ubicación.
type Row struct {
	Source string
	Line   int
	Fields map[string]any
}

// RawFields es la fila traducida a los campos canónicos, sin validar todavía.
// TechnicalKey en nil significa ausente.
type RawFields struct {
	Resolution       any
	DocType          any
	StartDate        any
	EndDate          any
	Store            any
	Prefix           any
	StartConsecutive any
	EndConsecutive   any
	TechnicalKey     any
}

// Translate lleva los encabezados de la fila a los campos canónicos. Las columnas desconocidas
// y los valores nil se ignoran. Si un campo llega por nombre canónico y por alias, gana el nombre canónico.
func Translate(rules Rules, row map[string]any) (RawFields, error) {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(map[string]any, len(canonicalFields))
	fromCanonical := make(map[string]bool, len(canonicalFields))
	for _, k := range keys {
		field, ok := rules.fieldFor(k)
		// un valor nil cuenta como columna ausente
		if !ok || row[k] == nil {
			continue
		}
		isCanonical := normalize(k) == field
		if _, seen := values[field]; seen && (fromCanonical[field] || !isCanonical) {
			continue
		}
		values[field] = row[k]
		fromCanonical[field] = isCanonical
	}

	for _, f := range requiredFields {
		if _, ok := values[f]; !ok {
			return RawFields{}, domain.NewFieldError(domain.ErrMissingField, f, nil, "")
		}
	}

	return RawFields{
		Resolution:       values[FieldResolution],
		DocType:          values[FieldDocType],
		StartDate:        values[FieldStartDate],
		EndDate:          values[FieldEndDate],
		Store:            values[FieldStore],
		Prefix:           values[FieldPrefix],
		StartConsecutive: values[FieldStartConsecutive],
		EndConsecutive:   values[FieldEndConsecutive],
		TechnicalKey:     values[FieldTechnicalKey],
	}, nil
}
