package resolutions

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/resoluciones-facturador/internal/domain"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/entity"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/repository"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/resolution"
	"github.com/jhoicas/resoluciones-facturador/pkg/dian"
)

// CloseOut cierra la vigencia de una resolución anterior un instante antes de que empiece la nueva.
type CloseOut struct {
	ResolutionID int64
	ValidTo      time.Time
	ReplacedBy   int64
}

// ReturnedRewrite reescribe en sitio la resolución de devoluciones vigente de una tienda.
type ReturnedRewrite struct {
	ResolutionID     int64
	ResolutionNumber int64
	StartDate        time.Time
	EndDate          time.Time
	Description      string
}

// Plan es el resultado del lote: lo que se cierra, lo que se reescribe y lo que se inserta.
type Plan struct {
	CloseOuts []CloseOut
	Rewrites  []ReturnedRewrite
	Inserts   []*entity.BillingResolution
}

// Empty indica si el plan no produce ninguna sentencia.
func (p *Plan) Empty() bool {
	return len(p.CloseOuts) == 0 && len(p.Rewrites) == 0 && len(p.Inserts) == 0
}

// AssignIDs numera el lote desde maxID+1 en el orden recibido. Si algún registro ya tiene
// identificador no se asigna ninguno.
func AssignIDs(batch []*entity.BillingResolution, maxID int64) error {
	for _, rec := range batch {
		if rec.ID != nil {
			return fmt.Errorf("asignar identificador a %s: %w", rec.Prefix,
				domain.NewFieldError(domain.ErrIDAlreadyAssigned, "id", *rec.ID, ""))
		}
	}
	next := maxID + 1
	for _, rec := range batch {
		if err := rec.AssignID(next); err != nil {
			return fmt.Errorf("asignar identificador a %s: %w", rec.Prefix, err)
		}
		next++
	}
	return nil
}

// CloseOuts genera un cierre por cada resolución con una anterior vigente. El cierre queda
// SupersessionStep antes del inicio de la nueva, de modo que las vigencias no se solapan.
func CloseOuts(batch []*entity.BillingResolution) []CloseOut {
	var out []CloseOut
	for _, rec := range batch {
		if rec.PreviousResolutionID == nil {
			continue
		}
		c := CloseOut{
			ResolutionID: *rec.PreviousResolutionID,
			ValidTo:      rec.StartDate.Add(-resolution.SupersessionStep),
		}
		if rec.ID != nil {
			c.ReplacedBy = *rec.ID
		}
		out = append(out, c)
	}
	return out
}

type returnedKey struct {
	store      int64
	number     int64
	start, end time.Time
}

// Assigner arma el plan del lote: identificadores, cierres y reescrituras de devoluciones.
type Assigner struct {
	catalog repository.CatalogReader
}

// NewAssigner construye el asignador.
func NewAssigner(catalog repository.CatalogReader) *Assigner {
	return &Assigner{catalog: catalog}
}

// Plan consulta una sola vez el mayor identificador y calcula el plan completo.
// Cualquier error de consulta aborta el lote.
func (a *Assigner) Plan(ctx context.Context, batch []*entity.BillingResolution) (*Plan, error) {
	maxID, err := a.catalog.MaxResolutionID(ctx)
	if err != nil {
		return nil, fmt.Errorf("consultar identificador máximo: %w", err)
	}
	if err := AssignIDs(batch, maxID); err != nil {
		return nil, err
	}
	rewrites, err := a.ReturnedRewrites(ctx, batch)
	if err != nil {
		return nil, err
	}
	return &Plan{
		CloseOuts: CloseOuts(batch),
		Rewrites:  rewrites,
		Inserts:   batch,
	}, nil
}

// ReturnedRewrites aplica la política de devoluciones: por cada (tienda, resolución, inicio, fin)
// distinto de las facturas de venta del lote, la resolución de devoluciones vigente de la tienda
// se reescribe con la nueva numeración en lugar de insertar otra fila.
func (a *Assigner) ReturnedRewrites(ctx context.Context, batch []*entity.BillingResolution) ([]ReturnedRewrite, error) {
	var out []ReturnedRewrite
	seen := make(map[returnedKey]bool)
	for _, rec := range batch {
		if rec.DocType != dian.DocTypeSale {
			continue
		}
		key := returnedKey{store: rec.Store, number: rec.ResolutionNumber, start: rec.StartDate, end: rec.EndDate}
		if seen[key] {
			continue
		}
		seen[key] = true

		returned, err := a.catalog.FindActiveReturnedResolution(ctx, rec.Store)
		if err != nil {
			return nil, fmt.Errorf("consultar resolución de devoluciones de la tienda %d: %w", rec.Store, err)
		}
		if returned == nil {
			continue
		}
		out = append(out, ReturnedRewrite{
			ResolutionID:     returned.ID,
			ResolutionNumber: rec.ResolutionNumber,
			StartDate:        rec.StartDate,
			EndDate:          rec.EndDate,
			Description: resolution.LegalDescription(rec.ResolutionNumber, rec.StartDate, rec.EndDate,
				returned.Prefix, rec.StartConsecutive, rec.EndConsecutive),
		})
	}
	return out, nil
}
