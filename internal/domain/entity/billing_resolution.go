package entity

import (
	"time"

	"github.com/jhoicas/resoluciones-facturador/internal/domain"
	"github.com/jhoicas/resoluciones-facturador/pkg/dian"
)

// BillingResolution representa una fila validada del archivo de resoluciones de facturación autorizadas por la DIAN,
// lista para insertarse en factura.resoluciones.
// Solo ID se modifica después de construirla, y una única vez (AssignID).
type BillingResolution struct {
	ID                   *int64
	ResolutionNumber     int64        // Número de resolución (ej: 18764000000001)
	DocType              dian.DocType // Origen del documento (c_origen)
	StartDate            time.Time    // Inicio de vigencia
	EndDate              time.Time    // Fin de vigencia
	Store                int64        // Tienda (n_concepto_fact del tipo de factura)
	StoreLabel           string       // Etiqueta de tienda leída del archivo, normalizada
	Prefix               string       // Prefijo autorizado (ej: "SETP")
	StartConsecutive     int64        // Número inicial del rango autorizado
	EndConsecutive       int64        // Número final del rango autorizado
	TechnicalKey         string
	TechnicalKeyDerived  bool   // true si la clave técnica se calculó a partir del prefijo
	BillTypeID           *int64 // Tipo de factura (c_tipo_fac) resuelto por prefijo
	PreviousResolutionID *int64 // Resolución vigente de la misma clasificación, si existe
}

// AssignID asigna el identificador definitivo. Falla si ya tenía uno.
func (r *BillingResolution) AssignID(id int64) error {
	if r.ID != nil {
		return domain.NewFieldError(domain.ErrIDAlreadyAssigned, "id", *r.ID, "")
	}
	r.ID = &id
	return nil
}
