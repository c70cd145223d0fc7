package resolution_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/resoluciones-facturador/internal/domain"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/entity"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/resolution"
	"github.com/jhoicas/resoluciones-facturador/pkg/dian"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsValidity(t *testing.T) {
	cases := []struct {
		start, end time.Time
		want       int
	}{
		{date(2024, 1, 1), date(2025, 1, 1), 12}, // 366 días
		{date(2023, 1, 1), date(2023, 1, 31), 1}, // 30 días exactos
		{date(2023, 1, 1), date(2023, 1, 30), 0}, // 29 días
		{date(2023, 1, 1), date(2023, 3, 2), 2},  // 60 días
		{date(2023, 1, 1), date(2023, 3, 31), 2}, // 89 días
		{date(2024, 1, 1), date(2026, 1, 1), 24}, // 731 días
		{date(2024, 2, 1), date(2024, 3, 1), 0},  // febrero bisiesto, 29 días
		{date(2023, 1, 1), time.Date(2023, 1, 31, 12, 0, 0, 0, time.UTC), 1},
		{date(2024, 1, 1), date(2999, 12, 31), 11882}, // 356476 días, fuera del rango de time.Duration
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, resolution.MonthsValidity(tc.start, tc.end),
			"%s → %s", tc.start.Format("2006-01-02"), tc.end.Format("2006-01-02"))
	}
}

func TestLegalDescription(t *testing.T) {
	msg := resolution.LegalDescription(19123456789, date(2024, 1, 1), date(2025, 1, 1), "SETP", 1, 999999999)
	assert.Equal(t,
		"Resolución de Factura Electrónica Nro. 19123456789  Fecha 01/01/2024  Prefijo SETP  Rango 1 al 999999999 Vigencia 12 meses.",
		msg)
}

func sampleRecord() *entity.BillingResolution {
	id, billType := int64(101), int64(42)
	return &entity.BillingResolution{
		ID:               &id,
		ResolutionNumber: 19123456789,
		DocType:          dian.DocTypeSale,
		StartDate:        date(2024, 1, 1),
		EndDate:          date(2025, 1, 1),
		Store:            7,
		Prefix:           "SETP",
		StartConsecutive: 1,
		EndConsecutive:   999999999,
		TechnicalKey:     "fc8eac422eba16e22ffd8c6f94b3f40a",
		BillTypeID:       &billType,
	}
}

func TestValueTuple(t *testing.T) {
	tuple, err := resolution.ValueTuple(sampleRecord(), 1)
	require.NoError(t, err)
	assert.Equal(t,
		"(101, 1, '5', 42, 19123456789, 1, 999999999, '2024-01-01 00:00:00', '2024-01-01 00:00:00', '2025-01-01 00:00:00', "+
			"'Resolución de Factura Electrónica Nro. 19123456789  Fecha 01/01/2024  Prefijo SETP  Rango 1 al 999999999 Vigencia 12 meses.', "+
			"'fc8eac422eba16e22ffd8c6f94b3f40a')",
		tuple)
}

func TestValueTuple_FaltaPrerequisito(t *testing.T) {
	r := sampleRecord()
	r.BillTypeID = nil
	_, err := resolution.ValueTuple(r, 1)
	assert.ErrorIs(t, err, domain.ErrMissingPrerequisite)

	r = sampleRecord()
	r.ID = nil
	_, err = resolution.ValueTuple(r, 1)
	assert.ErrorIs(t, err, domain.ErrMissingPrerequisite)
}

func TestAssignID_UnaSolaVez(t *testing.T) {
	r := sampleRecord()
	r.ID = nil
	require.NoError(t, r.AssignID(11))
	assert.Equal(t, int64(11), *r.ID)
	assert.ErrorIs(t, r.AssignID(12), domain.ErrIDAlreadyAssigned)
	assert.Equal(t, int64(11), *r.ID)
}

func TestEscapeSQL(t *testing.T) {
	assert.Equal(t, "Tienda D''Luca", resolution.EscapeSQL("Tienda D'Luca"))
}
