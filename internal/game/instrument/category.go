package instrument

import "strings"

// Category é o tempo cirúrgico ao qual um instrumento pertence.
type Category string

const (
	Dierese     Category = "dierese"
	Preensao    Category = "preensao"
	Hemostasia  Category = "hemostasia"
	Afastadores Category = "afastadores"
	Especiais   Category = "especiais"
	Sintese     Category = "sintese"
)

// Categories lista as seis categorias na ordem canônica.
var Categories = []Category{Dierese, Preensao, Hemostasia, Afastadores, Especiais, Sintese}

var allowedCategories = map[Category]struct{}{
	Dierese:     {},
	Preensao:    {},
	Hemostasia:  {},
	Afastadores: {},
	Especiais:   {},
	Sintese:     {},
}

// Valid informa se c é uma das seis categorias.
func (c Category) Valid() bool {
	_, ok := allowedCategories[c]
	return ok
}

func (c Category) String() string { return string(c) }

// NormalizeCategory converte um nome livre ("Síntese", "Preensão", "afastador") para a categoria.
// Nomes que não reconhecemos caem em Especiais.
func NormalizeCategory(s string) Category {
	k := strings.ToLower(strings.TrimSpace(stripAccents(s)))
	switch {
	case strings.Contains(k, "dierese"):
		return Dierese
	case strings.Contains(k, "preens"):
		return Preensao
	case strings.Contains(k, "hemostasia"):
		return Hemostasia
	case strings.Contains(k, "afastador"):
		return Afastadores
	case strings.Contains(k, "especial"):
		return Especiais
	case strings.Contains(k, "sintese"):
		return Sintese
	default:
		return Especiais
	}
}
