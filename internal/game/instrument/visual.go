package instrument

import (
	"encoding/json"
)

// VisualKind distingue as duas formas de desenhar um instrumento.
type VisualKind uint8

const (
	VisualIcon VisualKind = iota
	VisualImage
)

func (k VisualKind) String() string {
	if k == VisualImage {
		return "image"
	}
	return "icon"
}

// Glyph é o ícone vetorial usado quando não há imagem.
type Glyph string

const (
	GlyphScalpel      Glyph = "scalpel"
	GlyphScissors     Glyph = "scissors"
	GlyphForceps      Glyph = "forceps"
	GlyphNeedleHolder Glyph = "needle-holder"
	GlyphGauze        Glyph = "gauze"
)

// Visual é resolvido uma única vez na construção do catálogo.
// Kind == VisualImage usa ImageBase; Kind == VisualIcon usa Glyph.
type Visual struct {
	Kind      VisualKind
	Glyph     Glyph
	ImageBase string
}

// IconFor devolve o ícone padrão de cada categoria.
func IconFor(c Category) Glyph {
	switch c {
	case Dierese:
		return GlyphScalpel
	case Sintese:
		return GlyphNeedleHolder
	case Hemostasia, Preensao:
		return GlyphForceps
	case Especiais:
		return GlyphGauze
	default:
		return GlyphScissors
	}
}

func newVisual(c Category, imageBase string) Visual {
	if imageBase == "" {
		return Visual{Kind: VisualIcon, Glyph: IconFor(c)}
	}
	return Visual{Kind: VisualImage, Glyph: IconFor(c), ImageBase: imageBase}
}

func (v Visual) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind  string `json:"kind"`
		Glyph Glyph  `json:"glyph"`
		Image string `json:"image,omitempty"`
	}{Kind: v.Kind.String(), Glyph: v.Glyph, Image: v.ImageBase}
	return json.Marshal(out)
}
