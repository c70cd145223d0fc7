package dian_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/resoluciones-facturador/pkg/dian"
)

func TestDocType_IsValid(t *testing.T) {
	for _, code := range []int{4, 5, 8, 9, 13, 15} {
		assert.True(t, dian.DocType(code).IsValid(), "el código %d debe ser válido", code)
	}
	for _, code := range []int{0, 1, 6, 14, 99} {
		assert.False(t, dian.DocType(code).IsValid(), "el código %d no pertenece al catálogo", code)
	}
}

func TestDefaultDocTypeNames_PertenecenAlCatalogo(t *testing.T) {
	for name, code := range dian.DefaultDocTypeNames {
		assert.True(t, code.IsValid(), "%q apunta a un código fuera del catálogo", name)
	}
}

func TestValidDocTypeList(t *testing.T) {
	assert.Equal(t, "4, 5, 8, 9, 13, 15", dian.ValidDocTypeList())
	assert.Equal(t, "9", dian.DocTypeReturn.Code())
}
