package instrument

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	degreeSigns = strings.NewReplacer("°", "", "º", "", "(", " ", ")", " ")
	nonSlugRun  = regexp.MustCompile(`[^a-z0-9]+`)
)

// stripAccents decompõe (NFKD) e remove as marcas combinantes: "Pinça" -> "Pinca".
func stripAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Slugify gera o identificador de um instrumento a partir do rótulo.
// Ex: "Cabo de bisturi n° 3" -> "cabo-de-bisturi-n-3".
func Slugify(label string) string {
	s := stripAccents(strings.ToLower(strings.TrimSpace(label)))
	s = degreeSigns.Replace(s)
	s = nonSlugRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
