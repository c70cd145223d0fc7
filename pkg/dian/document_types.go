// Package dian contiene catálogos del facturador alineados con la numeración autorizada por la DIAN (Colombia).
package dian

import (
	"sort"
	"strconv"
	"strings"
)

// DocType es el código de origen (c_origen) de una resolución en el facturador.
type DocType int

// =============================================================================
// Orígenes de documento admitidos para resoluciones de numeración.
// =============================================================================

const (
	DocTypeCreditNote  DocType = 4  // Nota crédito
	DocTypeSale        DocType = 5  // Factura electrónica de venta
	DocTypeDebitNote   DocType = 8  // Nota débito
	DocTypeReturn      DocType = 9  // Documento de devolución
	DocTypeContingency DocType = 13 // Factura de contingencia
	DocTypeSupport     DocType = 15 // Documento soporte
)

// ValidDocTypes contiene los orígenes válidos.
var ValidDocTypes = map[DocType]bool{
	DocTypeCreditNote:  true,
	DocTypeSale:        true,
	DocTypeDebitNote:   true,
	DocTypeReturn:      true,
	DocTypeContingency: true,
	DocTypeSupport:     true,
}

// DefaultDocTypeNames traduce el texto de la columna "Tipo" del archivo de resoluciones.
var DefaultDocTypeNames = map[string]DocType{
	"Factura de venta":        DocTypeSale,
	"Factura de contingencia": DocTypeContingency,
}

// IsValid indica si el código pertenece al catálogo.
func (d DocType) IsValid() bool {
	return ValidDocTypes[d]
}

// Code devuelve el código como texto, tal como se guarda en c_origen.
func (d DocType) Code() string {
	return strconv.Itoa(int(d))
}

// ValidDocTypeList devuelve los códigos válidos ordenados, útil para mensajes de error.
func ValidDocTypeList() string {
	codes := make([]int, 0, len(ValidDocTypes))
	for d := range ValidDocTypes {
		codes = append(codes, int(d))
	}
	sort.Ints(codes)
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ", ")
}
