package tabular_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/resoluciones-facturador/internal/domain"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/resolution"
	"github.com/jhoicas/resoluciones-facturador/internal/infrastructure/tabular"
	"github.com/jhoicas/resoluciones-facturador/pkg/logger"
)

const header = "Resolución,Tipo,Válida desde,Válida hasta,Tienda,Prefijo,Desde,Hasta,Clave técnica\n"

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadRows_CSV(t *testing.T) {
	dir := t.TempDir()
	content := header +
		"19123456789,Factura de venta,2024-01-01,2025-01-01,SETP,SETP,1,999999999,\n" +
		",,,,,,,,\n" +
		"19123456790,Factura de contingencia,2024-02-01,2025-02-01,CONT,CONT,1,5000,\n"
	writeFile(t, dir, "b.csv", append([]byte{0xEF, 0xBB, 0xBF}, content...))
	writeFile(t, dir, "notas.txt", []byte("ignorado"))

	rows, err := tabular.NewReader(dir, "", logger.Nop()).ReadRows(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "b.csv", rows[0].Source)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, 4, rows[1].Line, "la fila vacía cuenta para la numeración")
	assert.Equal(t, "19123456789", rows[0].Fields["Resolución"], "el BOM no debe quedar pegado al primer encabezado")
	assert.Equal(t, "", rows[0].Fields["Clave técnica"])
	assert.Equal(t, "CONT", rows[1].Fields["Prefijo"])
}

func TestReadRows_CSVPuntoYComaLatin1(t *testing.T) {
	dir := t.TempDir()
	utf8Content := "Resolución;Tipo;Válida desde;Válida hasta;Tienda;Prefijo;Desde;Hasta\n" +
		"19123456789;Factura de venta;01/01/2024;01/01/2025;Tienda Norte;SETP;1;999999999\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(utf8Content))
	require.NoError(t, err)
	writeFile(t, dir, "abril.csv", latin1)

	rows, err := tabular.NewReader(dir, "", logger.Nop()).ReadRows(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "19123456789", rows[0].Fields["Resolución"])
	assert.Equal(t, "01/01/2024", rows[0].Fields["Válida desde"])
	assert.Equal(t, "Tienda Norte", rows[0].Fields["Tienda"])
}

func TestReadRows_XLSX(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	headers := []string{"Resolución", "Tipo", "Válida desde", "Válida hasta", "Tienda", "Prefijo", "Desde", "Hasta", "Clave técnica"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, h))
	}
	values := []any{"19123456789", "Factura de venta", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "SETP", "SETP", "1", "999999999"}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	require.NoError(t, f.SaveAs(filepath.Join(dir, "resoluciones.xlsx")))
	require.NoError(t, f.Close())

	rows, err := tabular.NewReader(dir, "", logger.Nop()).ReadRows(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	fields := rows[0].Fields
	assert.Equal(t, "19123456789", fields["Resolución"])
	assert.Equal(t, "2024-01-01", fields["Válida desde"])
	assert.Equal(t, "2025-01-01", fields["Válida hasta"])
	assert.Equal(t, "", fields["Clave técnica"])

	cand, err := resolution.NewCoercer(resolution.DefaultRules()).Coerce(fields)
	require.NoError(t, err)
	assert.Equal(t, "SETP", cand.Prefix)
	assert.True(t, cand.TechnicalKeyDerived)
}

func TestReadRows_SupplyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", []byte(header+"19123456789,5,2024-01-01,2025-01-01,SETP,SETP,1,9,\n"))
	supply := writeFile(t, dir, "b.csv", []byte(header+"19123456790,5,2024-01-01,2025-01-01,FE01,FE01,1,9,\n"))

	rows, err := tabular.NewReader(dir, supply, logger.Nop()).ReadRows(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "FE01", rows[0].Fields["Prefijo"])
}

func TestReadRows_SupplyFileInexistente(t *testing.T) {
	dir := t.TempDir()
	_, err := tabular.NewReader(dir, filepath.Join(dir, "no.xlsx"), logger.Nop()).ReadRows(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoInput)
}

func TestReadRows_SinArchivos(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "~$abierto.xlsx", []byte("lock"))

	_, err := tabular.NewReader(dir, "", logger.Nop()).ReadRows(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoInput)
}

func TestReadRows_SoloEncabezado(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vacio.csv", []byte(header))

	_, err := tabular.NewReader(dir, "", logger.Nop()).ReadRows(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoInput)
}

func TestFiles_Ordenados(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "c.xlsx", []byte{})
	writeFile(t, dir, "a.CSV", []byte{})
	writeFile(t, dir, "b.csv", []byte{})

	files, err := tabular.NewReader(dir, "", logger.Nop()).Files()

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.CSV"),
		filepath.Join(dir, "b.csv"),
		filepath.Join(dir, "c.xlsx"),
	}, files)
}
