package resolutions_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/resoluciones-facturador/internal/application/resolutions"
	"github.com/jhoicas/resoluciones-facturador/internal/domain"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/entity"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/resolution"
	"github.com/jhoicas/resoluciones-facturador/pkg/dian"
	"github.com/jhoicas/resoluciones-facturador/pkg/logger"
)

func newUseCase(catalog *fakeCatalog, rows []resolution.Row, strict bool) *resolutions.GenerateUseCase {
	return resolutions.NewGenerateUseCase(
		fakeReader{rows: rows},
		resolution.NewCoercer(resolution.DefaultRules()),
		resolutions.NewReferenceResolver(catalog),
		resolutions.NewAssigner(catalog),
		resolutions.NewStatementEmitter(table, 1),
		logger.Nop(),
		strict,
	)
}

func setpCatalog() *fakeCatalog {
	catalog := newFakeCatalog()
	catalog.billTypes["SETP"] = entity.BillType{ID: 42, Store: 7, Prefix: "SETP"}
	return catalog
}

func TestExecute_PrefijoResueltoSinAnterior(t *testing.T) {
	catalog := setpCatalog()

	report, err := newUseCase(catalog, []resolution.Row{sheetRow(2, setpRow())}, false).Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Accepted, 1)
	assert.Empty(t, report.Rejected)
	assert.NotEmpty(t, report.RunID)

	rec := report.Accepted[0]
	assert.Equal(t, dian.DocTypeSale, rec.DocType)
	assert.Equal(t, int64(7), rec.Store)
	require.NotNil(t, rec.BillTypeID)
	assert.Equal(t, int64(42), *rec.BillTypeID)
	assert.Nil(t, rec.PreviousResolutionID)
	assert.Equal(t, resolution.DeriveTechnicalKey("SETP"), rec.TechnicalKey)
	assert.Equal(t, int64(1), *rec.ID)

	assert.Empty(t, report.Plan.CloseOuts)
	assert.NotContains(t, report.SQL, "UPDATE")
	assert.Contains(t, report.SQL, "'"+resolution.DeriveTechnicalKey("SETP")+"');\n")
}

func TestExecute_CierraLaResolucionAnterior(t *testing.T) {
	catalog := setpCatalog()
	catalog.active[42] = 10
	catalog.maxID = 100

	report, err := newUseCase(catalog, []resolution.Row{sheetRow(2, setpRow())}, false).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(report.SQL, "UPDATE"))
	assert.True(t, strings.HasPrefix(report.SQL,
		"UPDATE factura.resoluciones SET f_vigencia_hasta = '2023-12-31 23:59:59' WHERE c_resolucion = 10;\n\nINSERT INTO"))
	assert.Contains(t, report.SQL, "VALUES\n(101, 1, '5', 42, ")
}

func TestExecute_PrefijoInvalidoNoConsulta(t *testing.T) {
	catalog := setpCatalog()
	row := setpRow()
	row["Prefijo"] = "abcd"

	report, err := newUseCase(catalog, []resolution.Row{sheetRow(2, row)}, false).Execute(context.Background())

	require.NoError(t, err)
	assert.Empty(t, report.Accepted)
	require.Len(t, report.Rejected, 1)
	assert.ErrorIs(t, report.Rejected[0], domain.ErrPatternMismatch)
	assert.Equal(t, 2, report.Rejected[0].Line)
	assert.Equal(t, 0, catalog.prefixLookups)
	assert.Equal(t, 0, catalog.maxLookups)
	assert.True(t, report.Plan.Empty())
	assert.Empty(t, report.SQL)
}

func TestExecute_RechazosNoDetienenElLote(t *testing.T) {
	catalog := setpCatalog()
	unknown := setpRow()
	unknown["Prefijo"] = "ZZZZ"
	unknown["Tienda"] = "ZZZZ"

	rows := []resolution.Row{sheetRow(2, unknown), sheetRow(3, setpRow())}
	report, err := newUseCase(catalog, rows, false).Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Rejected, 1)
	assert.ErrorIs(t, report.Rejected[0], domain.ErrReferenceNotFound)
	require.Len(t, report.Accepted, 1)
	assert.Equal(t, "SETP", report.Accepted[0].Prefix)
}

func TestExecute_TiendaNumericaSeRechazaSinDetenerElLote(t *testing.T) {
	catalog := setpCatalog()
	numeric := setpRow()
	numeric["Tienda"] = int64(7)

	rows := []resolution.Row{sheetRow(2, setpRow()), sheetRow(3, numeric)}
	report, err := newUseCase(catalog, rows, false).Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Accepted, 1)
	require.Len(t, report.Rejected, 1)
	assert.ErrorIs(t, report.Rejected[0], domain.ErrMissingPrerequisite)
	assert.Equal(t, 3, report.Rejected[0].Line)
	assert.Contains(t, report.SQL, "VALUES\n(1, 1, '5', 42, ")
}

func TestExecute_Estricto(t *testing.T) {
	catalog := setpCatalog()
	bad := setpRow()
	bad["Desde"] = "-1"

	rows := []resolution.Row{sheetRow(2, bad), sheetRow(3, setpRow())}
	report, err := newUseCase(catalog, rows, true).Execute(context.Background())

	require.ErrorIs(t, err, resolutions.ErrRejectedRows)
	require.NotNil(t, report)
	assert.Empty(t, report.SQL)
	assert.Equal(t, 0, catalog.maxLookups)
}

func TestExecute_SinEntrada(t *testing.T) {
	report, err := newUseCase(setpCatalog(), nil, false).Execute(context.Background())

	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrNoInput)
}

func TestValidate_NoConsultaElCatalogo(t *testing.T) {
	catalog := setpCatalog()
	bad := setpRow()
	bad["Tipo"] = "Factura de compra"

	rows := []resolution.Row{sheetRow(2, setpRow()), sheetRow(3, bad)}
	report, err := newUseCase(catalog, rows, false).Validate(context.Background())

	require.NoError(t, err)
	assert.Len(t, report.Accepted, 1)
	require.Len(t, report.Rejected, 1)
	assert.ErrorIs(t, report.Rejected[0], domain.ErrUnknownEnumValue)
	assert.Equal(t, 0, catalog.prefixLookups)
}
