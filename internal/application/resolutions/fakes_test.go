package resolutions_test

import (
	"context"
	"time"

	"github.com/jhoicas/resoluciones-facturador/internal/domain"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/entity"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/resolution"
)

// fakeCatalog es un catálogo en memoria que cuenta las consultas recibidas.
type fakeCatalog struct {
	billTypes map[string]entity.BillType
	active    map[int64]int64
	returned  map[int64]entity.ReturnedResolution
	maxID     int64

	maxErr      error
	returnedErr error

	prefixLookups   int
	activeLookups   int
	maxLookups      int
	returnedLookups int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		billTypes: map[string]entity.BillType{},
		active:    map[int64]int64{},
		returned:  map[int64]entity.ReturnedResolution{},
	}
}

func (f *fakeCatalog) FindBillTypeByPrefix(_ context.Context, prefix string) (*entity.BillType, error) {
	f.prefixLookups++
	bt, ok := f.billTypes[prefix]
	if !ok {
		return nil, nil
	}
	return &bt, nil
}

func (f *fakeCatalog) FindActiveResolutionID(_ context.Context, billTypeID int64) (*int64, error) {
	f.activeLookups++
	id, ok := f.active[billTypeID]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (f *fakeCatalog) MaxResolutionID(context.Context) (int64, error) {
	f.maxLookups++
	return f.maxID, f.maxErr
}

func (f *fakeCatalog) FindActiveReturnedResolution(_ context.Context, store int64) (*entity.ReturnedResolution, error) {
	f.returnedLookups++
	if f.returnedErr != nil {
		return nil, f.returnedErr
	}
	r, ok := f.returned[store]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// fakeReader entrega filas fijas.
type fakeReader struct {
	rows []resolution.Row
}

func (r fakeReader) ReadRows(context.Context) ([]resolution.Row, error) {
	if len(r.rows) == 0 {
		return nil, domain.ErrNoInput
	}
	return r.rows, nil
}

func sheetRow(line int, fields map[string]any) resolution.Row {
	return resolution.Row{Source: "resoluciones.xlsx", Line: line, Fields: fields}
}

// setpRow es la fila de la plantilla para el prefijo SETP.
func setpRow() map[string]any {
	return map[string]any{
		"Resolución":    "19123456789",
		"Tipo":          "Factura de venta",
		"Válida desde":  "2024-01-01",
		"Válida hasta":  "2025-01-01",
		"Tienda":        "SETP",
		"Prefijo":       "SETP",
		"Desde":         "1",
		"Hasta":         "999999999",
		"Clave técnica": "",
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(v int64) *int64 { return &v }

// record arma una resolución ya resuelta contra el catálogo.
func record(prefix string, store, billType int64, start, end time.Time) *entity.BillingResolution {
	return &entity.BillingResolution{
		ResolutionNumber: 19123456789,
		DocType:          5,
		StartDate:        start,
		EndDate:          end,
		Store:            store,
		Prefix:           prefix,
		StartConsecutive: 1,
		EndConsecutive:   999999999,
		TechnicalKey:     resolution.DeriveTechnicalKey(prefix),
		BillTypeID:       ptr(billType),
	}
}
