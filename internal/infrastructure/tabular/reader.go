// Package tabular lee las planillas de resoluciones (CSV y XLSX) y entrega filas crudas
// con los encabezados de la primera fila como claves.
package tabular

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jhoicas/resoluciones-facturador/internal/domain"
	"github.com/jhoicas/resoluciones-facturador/internal/domain/resolution"
	"github.com/jhoicas/resoluciones-facturador/pkg/logger"
)

// Reader recorre el directorio de entrada, o solo el archivo indicado en supply_file.
type Reader struct {
	dir        string
	supplyPath string
	log        *logger.Logger
}

// NewReader construye el lector. supplyPath vacío = todos los .csv/.xlsx de dir.
func NewReader(dir, supplyPath string, log *logger.Logger) *Reader {
	return &Reader{dir: dir, supplyPath: supplyPath, log: log}
}

// Files devuelve los archivos a leer, ordenados por nombre.
func (r *Reader) Files() ([]string, error) {
	if r.supplyPath != "" {
		info, err := os.Stat(r.supplyPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoInput, r.supplyPath)
		}
		if info.IsDir() || !supported(r.supplyPath) {
			return nil, fmt.Errorf("%w: %s no es un archivo CSV o XLSX", domain.ErrNoInput, r.supplyPath)
		}
		return []string{r.supplyPath}, nil
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: el directorio %s no existe", domain.ErrNoInput, r.dir)
		}
		return nil, fmt.Errorf("leer directorio de entrada: %w", err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		// ~$ son los archivos de bloqueo que deja Excel abiertos
		if e.IsDir() || strings.HasPrefix(name, "~$") || !supported(name) {
			continue
		}
		files = append(files, filepath.Join(r.dir, name))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w en %s", domain.ErrNoInput, r.dir)
	}
	sort.Strings(files)
	return files, nil
}

// ReadRows lee todas las filas de todos los archivos, en orden de archivo y de línea.
func (r *Reader) ReadRows(ctx context.Context) ([]resolution.Row, error) {
	files, err := r.Files()
	if err != nil {
		return nil, err
	}

	var rows []resolution.Row
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		table, err := readTable(path)
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", filepath.Base(path), err)
		}
		fileRows := toRows(filepath.Base(path), table)
		r.log.Info().Str("file", path).Int("rows", len(fileRows)).Msg("archivo de entrada leído")
		rows = append(rows, fileRows...)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: los archivos no tienen filas de datos", domain.ErrNoInput)
	}
	return rows, nil
}

func supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

func readTable(path string) ([][]string, error) {
	if strings.ToLower(filepath.Ext(path)) == ".xlsx" {
		return readXLSX(path)
	}
	return readCSV(path)
}

// toRows usa la primera fila como encabezado. La línea reportada es la de la planilla (encabezado = 1).
// Las filas totalmente vacías y las columnas sin encabezado se omiten.
func toRows(source string, table [][]string) []resolution.Row {
	if len(table) < 2 {
		return nil
	}
	header := make([]string, len(table[0]))
	for i, h := range table[0] {
		header[i] = strings.TrimSpace(h)
	}

	var rows []resolution.Row
	for i, record := range table[1:] {
		if blank(record) {
			continue
		}
		fields := make(map[string]any, len(header))
		for col, name := range header {
			if name == "" {
				continue
			}
			value := ""
			if col < len(record) {
				value = strings.TrimSpace(record[col])
			}
			fields[name] = value
		}
		rows = append(rows, resolution.Row{Source: source, Line: i + 2, Fields: fields})
	}
	return rows
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
