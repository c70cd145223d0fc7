// Package resolution valida y normaliza las filas del archivo de resoluciones de facturación
// y calcula los valores derivados (clave técnica, descripción legal, tupla SQL).
package resolution

import (
	"fmt"
	"strings"

	"github.com/jhoicas/resoluciones-facturador/pkg/dian"
)

// Nombres canónicos de los campos de entrada.
const (
	FieldResolution       = "resolution"
	FieldDocType          = "doc_type"
	FieldStartDate        = "start_date"
	FieldEndDate          = "end_date"
	FieldStore            = "store"
	FieldPrefix           = "prefix"
	FieldStartConsecutive = "start_consecutive"
	FieldEndConsecutive   = "end_consecutive"
	FieldTechnicalKey     = "technical_key"
)

// requiredFields en el orden en que se reportan los faltantes.
var requiredFields = []string{
	FieldResolution,
	FieldDocType,
	FieldStartDate,
	FieldEndDate,
	FieldStore,
	FieldPrefix,
	FieldStartConsecutive,
	FieldEndConsecutive,
}

var canonicalFields = map[string]bool{
	FieldResolution:       true,
	FieldDocType:          true,
	FieldStartDate:        true,
	FieldEndDate:          true,
	FieldStore:            true,
	FieldPrefix:           true,
	FieldStartConsecutive: true,
	FieldEndConsecutive:   true,
	FieldTechnicalKey:     true,
}

// DefaultHeaders son los encabezados de la plantilla de resoluciones.
var DefaultHeaders = map[string]string{
	"Resolución":    FieldResolution,
	"Tipo":          FieldDocType,
	"Válida desde":  FieldStartDate,
	"Válida hasta":  FieldEndDate,
	"Tienda":        FieldStore,
	"Prefijo":       FieldPrefix,
	"Desde":         FieldStartConsecutive,
	"Hasta":         FieldEndConsecutive,
	"Clave técnica": FieldTechnicalKey,
}

// Rules agrupa las tablas de traducción configurables. Es inmutable una vez construida:
// los mapas se copian y normalizan en NewRules.
type Rules struct {
	aliases  map[string]string
	docTypes map[string]dian.DocType
	stores   map[string]string
}

// NewRules construye las reglas a partir de la configuración.
// headers: encabezado → campo canónico. docTypes: nombre → código de origen.
// stores: etiqueta canónica de tienda → alias aceptados.
// Las claves se comparan sin distinguir mayúsculas ni espacios exteriores.
func NewRules(headers map[string]string, docTypes map[string]int, stores map[string][]string) (Rules, error) {
	r := Rules{
		aliases:  make(map[string]string, len(headers)),
		docTypes: make(map[string]dian.DocType, len(docTypes)),
		stores:   make(map[string]string),
	}
	for header, field := range headers {
		field = normalize(field)
		if !canonicalFields[field] {
			return Rules{}, fmt.Errorf("encabezado %q apunta a un campo desconocido %q", header, field)
		}
		r.aliases[normalize(header)] = field
	}
	for name, code := range docTypes {
		dt := dian.DocType(code)
		if !dt.IsValid() {
			return Rules{}, fmt.Errorf("tipo de documento %q con código %d fuera del catálogo (%s)", name, code, dian.ValidDocTypeList())
		}
		r.docTypes[normalize(name)] = dt
	}
	for label, aliases := range stores {
		canonical := strings.TrimSpace(label)
		r.stores[normalize(label)] = canonical
		for _, alias := range aliases {
			r.stores[normalize(alias)] = canonical
		}
	}
	return r, nil
}

// DefaultRules usa los encabezados y nombres de documento de la plantilla, sin grupos de tiendas.
func DefaultRules() Rules {
	docTypes := make(map[string]int, len(dian.DefaultDocTypeNames))
	for name, dt := range dian.DefaultDocTypeNames {
		docTypes[name] = int(dt)
	}
	r, err := NewRules(DefaultHeaders, docTypes, nil)
	if err != nil {
		panic(err)
	}
	return r
}

// fieldFor traduce un encabezado al campo canónico. El nombre canónico siempre se acepta.
func (r Rules) fieldFor(key string) (string, bool) {
	k := normalize(key)
	if canonicalFields[k] {
		return k, true
	}
	f, ok := r.aliases[k]
	return f, ok
}

func (r Rules) docType(name string) (dian.DocType, bool) {
	dt, ok := r.docTypes[normalize(name)]
	return dt, ok
}

// storeLabel devuelve la etiqueta canónica del grupo o el mismo texto si no pertenece a ninguno.
func (r Rules) storeLabel(label string) string {
	if canonical, ok := r.stores[normalize(label)]; ok {
		return canonical
	}
	return strings.TrimSpace(label)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
