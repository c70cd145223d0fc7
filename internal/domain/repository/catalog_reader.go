package repository

import (
	"context"

	"github.com/jhoicas/resoluciones-facturador/internal/domain/entity"
)

// CatalogReader define las consultas de solo lectura que el proceso necesita del facturador.
// Ninguna escribe: las sentencias de escritura se generan como texto para un ejecutor externo.
type CatalogReader interface {
	// FindBillTypeByPrefix devuelve nil, nil si el prefijo no existe en el catálogo.
	FindBillTypeByPrefix(ctx context.Context, prefix string) (*entity.BillType, error)

	// FindActiveResolutionID devuelve la resolución más reciente del tipo de factura cuya vigencia
	// aún no termina. nil, nil si no hay ninguna.
	FindActiveResolutionID(ctx context.Context, billTypeID int64) (*int64, error)

	// MaxResolutionID devuelve el mayor c_resolucion existente (0 si la tabla está vacía).
	MaxResolutionID(ctx context.Context) (int64, error)

	// FindActiveReturnedResolution devuelve la resolución de devoluciones vigente de la tienda, o nil, nil.
	FindActiveReturnedResolution(ctx context.Context, store int64) (*entity.ReturnedResolution, error)
}
