package domain

import (
	"errors"
	"fmt"
)

// Tipos de rechazo de una fila (sin dependencias externas).
var (
	ErrMissingField        = errors.New("campo obligatorio ausente")
	ErrTypeMismatch        = errors.New("tipo de dato no soportado")
	ErrPatternMismatch     = errors.New("formato inválido")
	ErrRangeViolation      = errors.New("rango inválido")
	ErrUnknownEnumValue    = errors.New("valor fuera del catálogo")
	ErrReferenceNotFound   = errors.New("referencia no encontrada en el catálogo")
	ErrMissingPrerequisite = errors.New("dato requerido sin calcular")
	ErrIDAlreadyAssigned   = errors.New("identificador ya asignado")
)

// Errores de lote: abortan la ejecución completa.
var (
	ErrNoInput = errors.New("no se encontraron archivos CSV o XLSX de entrada")
)

// FieldError describe el rechazo de un campo concreto. Unwrap devuelve el tipo de rechazo
// (ErrPatternMismatch, ErrRangeViolation, ...) para poder usar errors.Is.
type FieldError struct {
	Kind   error
	Field  string
	Value  any
	Detail string
}

// NewFieldError construye un FieldError.
func NewFieldError(kind error, field string, value any, detail string) *FieldError {
	return &FieldError{Kind: kind, Field: field, Value: value, Detail: detail}
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("%s: campo %q", e.Kind, e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf(", valor '%v'", e.Value)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *FieldError) Unwrap() error { return e.Kind }

// RowError ubica un error dentro del archivo de entrada.
type RowError struct {
	Source string
	Line   int
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
