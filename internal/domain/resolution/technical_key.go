package resolution

import (
	"crypto/sha256"
	"encoding/hex"
)

// DeriveTechnicalKey calcula la clave técnica de respaldo: SHA-256 en hexadecimal (64 caracteres) del prefijo.
func DeriveTechnicalKey(prefix string) string {
	sum := sha256.Sum256([]byte(prefix))
	return hex.EncodeToString(sum[:])
}
