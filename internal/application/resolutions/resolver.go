package resolutions

import (
	"context"
	"fmt"

	"github.com/jhoicas/resoluciones-facturador/internal/domain"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/entity"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/repository"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/resolution"
)

// ReferenceResolver completa un candidato con la tienda, el tipo de factura y la resolución vigente
// anterior, consultando el catálogo del facturador. Hace como máximo dos lecturas por fila y no guarda estado.
type ReferenceResolver struct {
	catalog repository.CatalogReader
}

// NewReferenceResolver construye el resolvedor.
func NewReferenceResolver(catalog repository.CatalogReader) *ReferenceResolver {
	return &ReferenceResolver{catalog: catalog}
}

// Resolve devuelve la resolución completa. Si la tienda llegó numérica no consulta nada y
// BillTypeID / PreviousResolutionID quedan sin valor.
func (r *ReferenceResolver) Resolve(ctx context.Context, cand *resolution.Candidate) (*entity.BillingResolution, error) {
	rec := cand.Record()
	if cand.Store.Numeric {
		return rec, nil
	}

	billType, err := r.catalog.FindBillTypeByPrefix(ctx, cand.Prefix)
	if err != nil {
		return nil, fmt.Errorf("consultar tipo de factura del prefijo %s: %w", cand.Prefix, err)
	}
	if billType == nil {
		return nil, domain.NewFieldError(domain.ErrReferenceNotFound, resolution.FieldStore, cand.Store.Label,
			"el prefijo "+cand.Prefix+" no tiene tipo de factura asociado")
	}
	rec.Store = billType.Store
	rec.BillTypeID = &billType.ID

	prev, err := r.catalog.FindActiveResolutionID(ctx, billType.ID)
	if err != nil {
		return nil, fmt.Errorf("consultar resolución vigente del tipo de factura %d: %w", billType.ID, err)
	}
	rec.PreviousResolutionID = prev
	return rec, nil
}
