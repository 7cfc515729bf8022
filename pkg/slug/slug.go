// Package slug genera identificadores URL-safe a partir de nombres de
// producto. Los nombres del catálogo traen acentos y eñes ("Jarrón de
// cerámica"); el slug los pliega a ASCII plano ("jarron-de-ceramica").
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer descompone (NFD), elimina marcas diacríticas y recompone.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make convierte un nombre en slug: minúsculas, sin diacríticos, palabras
// separadas por guion. Caracteres no alfanuméricos colapsan en un solo guion.
func Make(name string) string {
	folded, _, err := transform.String(foldTransformer, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	prevDash := true // evita guion inicial
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
