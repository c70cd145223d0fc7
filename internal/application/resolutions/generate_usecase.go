package resolutions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/resoluciones-facturador/internal/domain"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/entity"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/resolution"
	"github.com/jhoicas/resoluciones-facturador/pkg/logger"
)

// ErrRejectedRows se devuelve en modo estricto cuando alguna fila fue rechazada.
var ErrRejectedRows = errors.New("hay filas rechazadas")

// Report resume una ejecución.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Rows        int
	Accepted    []*entity.BillingResolution
	Rejected    []*domain.RowError
	Plan        *Plan
	SQL         string
}

// GenerateUseCase recorre el flujo completo:
//
//	filas → validación → referencias (DB) → plan del lote → texto SQL
//
// Las filas se procesan en orden y de forma secuencial; un rechazo no detiene el lote salvo en modo estricto.
type GenerateUseCase struct {
	reader   RowReader
	coercer  *resolution.Coercer
	resolver *ReferenceResolver
	assigner *Assigner
	emitter  *StatementEmitter
	log      *logger.Logger
	strict   bool
	now      func() time.Time
}

// NewGenerateUseCase construye el caso de uso. resolver, assigner y emitter pueden ser nil si solo se usa Validate.
func NewGenerateUseCase(
	reader RowReader,
	coercer *resolution.Coercer,
	resolver *ReferenceResolver,
	assigner *Assigner,
	emitter *StatementEmitter,
	log *logger.Logger,
	strict bool,
) *GenerateUseCase {
	return &GenerateUseCase{
		reader:   reader,
		coercer:  coercer,
		resolver: resolver,
		assigner: assigner,
		emitter:  emitter,
		log:      log,
		strict:   strict,
		now:      time.Now,
	}
}

// Execute genera el texto SQL del lote. El archivo de salida lo escribe el llamador.
func (uc *GenerateUseCase) Execute(ctx context.Context) (*Report, error) {
	rows, err := uc.reader.ReadRows(ctx)
	if err != nil {
		return nil, err
	}
	report := uc.newReport(rows)

	for _, row := range rows {
		cand, err := uc.coercer.Coerce(row.Fields)
		if err != nil {
			uc.reject(report, row, err)
			continue
		}
		rec, err := uc.resolver.Resolve(ctx, cand)
		if err != nil {
			uc.reject(report, row, err)
			continue
		}
		// tienda numérica: no hay búsqueda por prefijo y el tipo de factura queda sin resolver
		if rec.BillTypeID == nil {
			uc.reject(report, row, domain.NewFieldError(domain.ErrMissingPrerequisite, "bill_type_id", rec.Store,
				"la tienda llegó numérica y no se resolvió el tipo de factura"))
			continue
		}
		report.Accepted = append(report.Accepted, rec)
	}
	uc.log.Info().
		Str("run_id", report.RunID).
		Int("rows", report.Rows).
		Int("accepted", len(report.Accepted)).
		Int("rejected", len(report.Rejected)).
		Msg("resoluciones cargadas")

	if uc.strict && len(report.Rejected) > 0 {
		return report, fmt.Errorf("%w: %d de %d", ErrRejectedRows, len(report.Rejected), report.Rows)
	}
	if len(report.Accepted) == 0 {
		uc.log.Warn().Str("run_id", report.RunID).Msg("ninguna resolución válida, no se generan sentencias")
		report.Plan = &Plan{}
		return report, nil
	}

	plan, err := uc.assigner.Plan(ctx, report.Accepted)
	if err != nil {
		return report, err
	}
	report.Plan = plan
	uc.log.Info().
		Str("run_id", report.RunID).
		Int64("first_id", *plan.Inserts[0].ID).
		Int("close_outs", len(plan.CloseOuts)).
		Int("returned_rewrites", len(plan.Rewrites)).
		Msg("identificadores asignados")

	sql, err := uc.emitter.Render(plan)
	if err != nil {
		return report, fmt.Errorf("generar sentencias: %w", err)
	}
	report.SQL = sql
	return report, nil
}

// Validate solo valida las filas, sin consultar la base de datos.
func (uc *GenerateUseCase) Validate(ctx context.Context) (*Report, error) {
	rows, err := uc.reader.ReadRows(ctx)
	if err != nil {
		return nil, err
	}
	report := uc.newReport(rows)
	for _, row := range rows {
		cand, err := uc.coercer.Coerce(row.Fields)
		if err != nil {
			uc.reject(report, row, err)
			continue
		}
		report.Accepted = append(report.Accepted, cand.Record())
	}
	if uc.strict && len(report.Rejected) > 0 {
		return report, fmt.Errorf("%w: %d de %d", ErrRejectedRows, len(report.Rejected), report.Rows)
	}
	return report, nil
}

func (uc *GenerateUseCase) newReport(rows []resolution.Row) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: uc.now(),
		Rows:        len(rows),
	}
}

func (uc *GenerateUseCase) reject(report *Report, row resolution.Row, err error) {
	rowErr := &domain.RowError{Source: row.Source, Line: row.Line, Err: err}
	report.Rejected = append(report.Rejected, rowErr)

	ev := uc.log.Warn().Str("source", row.Source).Int("line", row.Line)
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		ev = ev.Str("field", fe.Field)
		if fe.Value != nil {
			ev = ev.Interface("value", fe.Value)
		}
	}
	ev.Err(err).Msg("fila rechazada")
}
