package resolution

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/resoluciones-facturador/internal/domain"
	"github.com/jhoicas/resoluciones-facturador/pkg/dian"
)

var (
	resolutionPattern   = regexp.MustCompile(`^[0-9]{11,}$`)
	prefixPattern       = regexp.MustCompile(`^[0-9A-Z]{4}$`)
	digitsPattern       = regexp.MustCompile(`^[0-9]+$`)
	technicalKeyPattern = regexp.MustCompile(`^[0-9a-z]{10,64}$`)
)

// dateLayouts aceptados para las fechas de vigencia. Las fechas dd/mm/aaaa se interpretan con el día primero.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05.000",
	"02/01/2006",
	"02/01/2006 15:04:05",
	"02-01-2006",
	"2006/01/02",
}

// StoreRef es la tienda tal como llegó en la fila. Si Numeric es false la tienda se resuelve por prefijo.
type StoreRef struct {
	ID      int64
	Label   string
	Numeric bool
}

// ParseResolutionNumber valida el número de resolución: al menos 11 dígitos si llega como texto.
func ParseResolutionNumber(v any) (int64, error) {
	if n, ok := asInt64(v); ok {
		if n <= 0 {
			return 0, domain.NewFieldError(domain.ErrRangeViolation, FieldResolution, v, "debe ser positivo")
		}
		return n, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, typeMismatch(FieldResolution, v)
	}
	s = strings.TrimSpace(s)
	if !resolutionPattern.MatchString(s) {
		return 0, domain.NewFieldError(domain.ErrPatternMismatch, FieldResolution, s, "se esperan al menos 11 dígitos")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, domain.NewFieldError(domain.ErrRangeViolation, FieldResolution, s, "excede el rango numérico")
	}
	if n <= 0 {
		return 0, domain.NewFieldError(domain.ErrRangeViolation, FieldResolution, s, "debe ser positivo")
	}
	return n, nil
}

// ParseDocType traduce el tipo de documento. El texto pasa por la tabla de nombres configurada;
// un texto solo de dígitos y los valores numéricos se comprueban contra el catálogo.
func ParseDocType(rules Rules, v any) (dian.DocType, error) {
	switch t := v.(type) {
	case dian.DocType:
		return checkDocType(t, v)
	case string:
		s := strings.TrimSpace(t)
		if dt, ok := rules.docType(s); ok {
			return checkDocType(dt, v)
		}
		if digitsPattern.MatchString(s) {
			n, err := strconv.Atoi(s)
			if err == nil {
				return checkDocType(dian.DocType(n), v)
			}
		}
		return 0, domain.NewFieldError(domain.ErrUnknownEnumValue, FieldDocType, s, "no pudo ser mapeado")
	}
	if n, ok := asInt64(v); ok {
		return checkDocType(dian.DocType(n), v)
	}
	return 0, typeMismatch(FieldDocType, v)
}

func checkDocType(dt dian.DocType, raw any) (dian.DocType, error) {
	if !dt.IsValid() {
		return 0, domain.NewFieldError(domain.ErrUnknownEnumValue, FieldDocType, raw,
			fmt.Sprintf("códigos válidos: %s", dian.ValidDocTypeList()))
	}
	return dt, nil
}

// ParseDate acepta time.Time o texto en alguno de los formatos conocidos.
func ParseDate(field string, v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return d, nil
			}
		}
		return time.Time{}, domain.NewFieldError(domain.ErrPatternMismatch, field, s, "fecha no reconocida")
	}
	return time.Time{}, typeMismatch(field, v)
}

// ParseStore conserva la tienda numérica o normaliza la etiqueta de texto por los grupos configurados.
func ParseStore(rules Rules, v any) (StoreRef, error) {
	if n, ok := asInt64(v); ok {
		if n <= 0 {
			return StoreRef{}, domain.NewFieldError(domain.ErrRangeViolation, FieldStore, v, "debe ser positivo")
		}
		return StoreRef{ID: n, Numeric: true}, nil
	}
	s, ok := v.(string)
	if !ok {
		return StoreRef{}, typeMismatch(FieldStore, v)
	}
	if strings.TrimSpace(s) == "" {
		return StoreRef{}, domain.NewFieldError(domain.ErrPatternMismatch, FieldStore, s, "vacío")
	}
	return StoreRef{Label: rules.storeLabel(s)}, nil
}

// ParsePrefix exige exactamente 4 caracteres en [0-9A-Z].
func ParsePrefix(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeMismatch(FieldPrefix, v)
	}
	s = strings.TrimSpace(s)
	if !prefixPattern.MatchString(s) {
		return "", domain.NewFieldError(domain.ErrPatternMismatch, FieldPrefix, s, "se esperan 4 caracteres [0-9A-Z]")
	}
	return s, nil
}

// ParseConsecutive valida un consecutivo: solo dígitos (sin signo ni decimales) y mayor que cero.
func ParseConsecutive(field string, v any) (int64, error) {
	if n, ok := asInt64(v); ok {
		if n <= 0 {
			return 0, domain.NewFieldError(domain.ErrRangeViolation, field, v, "debe ser mayor que cero")
		}
		return n, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, typeMismatch(field, v)
	}
	s = strings.TrimSpace(s)
	if !digitsPattern.MatchString(s) {
		return 0, domain.NewFieldError(domain.ErrPatternMismatch, field, s, "solo se admiten dígitos")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, domain.NewFieldError(domain.ErrRangeViolation, field, s, "excede el rango numérico")
	}
	if n <= 0 {
		return 0, domain.NewFieldError(domain.ErrRangeViolation, field, s, "debe ser mayor que cero")
	}
	return n, nil
}

// ParseTechnicalKey devuelve la clave técnica informada o, si está ausente, la derivada del prefijo.
// Los valores float (celdas vacías convertidas a NaN por el lector de la hoja) cuentan como ausentes.
func ParseTechnicalKey(v any, prefix string) (key string, derived bool, err error) {
	switch t := v.(type) {
	case nil:
		return DeriveTechnicalKey(prefix), true, nil
	case float64, float32:
		return DeriveTechnicalKey(prefix), true, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" || isMissingPlaceholder(s) {
			return DeriveTechnicalKey(prefix), true, nil
		}
		if !technicalKeyPattern.MatchString(s) {
			return "", false, domain.NewFieldError(domain.ErrPatternMismatch, FieldTechnicalKey, s, "se esperan entre 10 y 64 caracteres [0-9a-z]")
		}
		return s, false, nil
	}
	return "", false, typeMismatch(FieldTechnicalKey, v)
}

// isMissingPlaceholder reconoce la representación textual de una celda vacía numérica.
func isMissingPlaceholder(s string) bool {
	switch strings.ToLower(s) {
	case "nan", "null", "none":
		return true
	}
	return false
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func typeMismatch(field string, v any) error {
	return domain.NewFieldError(domain.ErrTypeMismatch, field, nil, fmt.Sprintf("se recibió %T", v))
}
