// Package sqlfile escribe el archivo de sentencias generado.
package sqlfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Header identifica la ejecución que generó el archivo.
type Header struct {
	RunID       string
	GeneratedAt time.Time
	Source      string // archivos de entrada, separados por coma
}

// Write crea (o reemplaza) el archivo en UTF-8 con un comentario de cabecera y las sentencias.
func Write(path string, h Header, sql string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("crear directorio de salida: %w", err)
	}
	var b strings.Builder
	b.WriteString("-- Resoluciones de facturación\n")
	fmt.Fprintf(&b, "-- run: %s\n", h.RunID)
	fmt.Fprintf(&b, "-- generado: %s\n", h.GeneratedAt.Format(time.RFC3339))
	if h.Source != "" {
		fmt.Fprintf(&b, "-- origen: %s\n", h.Source)
	}
	b.WriteString("\n")
	b.WriteString(sql)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	return nil
}
