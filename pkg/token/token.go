// Package token emite y hashea tokens opacos de un solo uso (verificación de
// correo, restablecimiento de contraseña). El texto plano se entrega al
// usuario exactamente una vez; en la base de datos solo vive el hash SHA-256,
// de modo que una fuga de la colección de usuarios no expone tokens válidos.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// tokenBytes longitud del token en bytes antes de codificar a hex.
const tokenBytes = 20

// New genera un token opaco aleatorio y devuelve (texto plano, hash).
// El texto plano va en el correo al usuario; el hash es lo único que se
// persiste.
func New() (plaintext, hash string, err error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generar token: %w", err)
	}
	plaintext = hex.EncodeToString(buf)
	return plaintext, Hash(plaintext), nil
}

// Hash calcula el hash SHA-256 (hex) de un token en texto plano. Es
// determinista: un token entrante se hashea y se compara contra el hash
// almacenado, nunca texto plano contra texto plano.
func Hash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
