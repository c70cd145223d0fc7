package resolution

import (
	"time"

	"github.com/jhoicas/resoluciones-facturador/internal/domain"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/entity"
	"github.com/jhoicas/resoluciones-facturador/pkg/dian"
)

// Candidate es una fila con todos sus campos validados, pendiente de resolver la tienda
// y las referencias contra el facturador.
type Candidate struct {
	ResolutionNumber    int64
	DocType             dian.DocType
	StartDate           time.Time
	EndDate             time.Time
	Store               StoreRef
	Prefix              string
	StartConsecutive    int64
	EndConsecutive      int64
	TechnicalKey        string
	TechnicalKeyDerived bool
}

// Record construye la resolución a partir del candidato. Store queda en el ID numérico recibido (o 0).
func (c *Candidate) Record() *entity.BillingResolution {
	return &entity.BillingResolution{
		ResolutionNumber:    c.ResolutionNumber,
		DocType:             c.DocType,
		StartDate:           c.StartDate,
		EndDate:             c.EndDate,
		Store:               c.Store.ID,
		StoreLabel:          c.Store.Label,
		Prefix:              c.Prefix,
		StartConsecutive:    c.StartConsecutive,
		EndConsecutive:      c.EndConsecutive,
		TechnicalKey:        c.TechnicalKey,
		TechnicalKeyDerived: c.TechnicalKeyDerived,
	}
}

// Coercer convierte filas crudas en candidatos validados según unas reglas fijas.
type Coercer struct {
	rules Rules
}

// NewCoercer construye el conversor.
func NewCoercer(rules Rules) *Coercer {
	return &Coercer{rules: rules}
}

// Coerce traduce y valida una fila. Devuelve el primer error encontrado; nunca un candidato parcial.
func (c *Coercer) Coerce(row map[string]any) (*Candidate, error) {
	raw, err := Translate(c.rules, row)
	if err != nil {
		return nil, err
	}
	return c.Validate(raw)
}

// Validate aplica las comprobaciones de cada campo y luego las de orden entre campos.
func (c *Coercer) Validate(raw RawFields) (*Candidate, error) {
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var (
		cand Candidate
		err  error
	)
	cand.ResolutionNumber, err = ParseResolutionNumber(raw.Resolution)
	check(err)
	cand.DocType, err = ParseDocType(c.rules, raw.DocType)
	check(err)
	cand.StartDate, err = ParseDate(FieldStartDate, raw.StartDate)
	check(err)
	cand.EndDate, err = ParseDate(FieldEndDate, raw.EndDate)
	check(err)
	cand.Store, err = ParseStore(c.rules, raw.Store)
	check(err)
	cand.Prefix, err = ParsePrefix(raw.Prefix)
	check(err)
	cand.StartConsecutive, err = ParseConsecutive(FieldStartConsecutive, raw.StartConsecutive)
	check(err)
	cand.EndConsecutive, err = ParseConsecutive(FieldEndConsecutive, raw.EndConsecutive)
	check(err)
	cand.TechnicalKey, cand.TechnicalKeyDerived, err = ParseTechnicalKey(raw.TechnicalKey, cand.Prefix)
	check(err)

	if len(errs) > 0 {
		return nil, errs[0]
	}

	if !cand.StartDate.Before(cand.EndDate) {
		return nil, domain.NewFieldError(domain.ErrRangeViolation, FieldStartDate, cand.StartDate.Format(TimestampLayout),
			"la vigencia debe iniciar antes de "+cand.EndDate.Format(TimestampLayout))
	}
	if cand.StartConsecutive >= cand.EndConsecutive {
		return nil, domain.NewFieldError(domain.ErrRangeViolation, FieldStartConsecutive, cand.StartConsecutive,
			"la secuencia de consecutivos no puede empezar en un valor mayor o igual al final")
	}
	return &cand, nil
}
