// Package layout descreve a geometria fixa da mesa: as seis zonas e a grade
// de miniaturas dentro de cada zona.
package layout

import (
	"errors"
	"fmt"

	"mesacirurgica/internal/game/instrument"
)

// Dimensões da mesa, em pixels da mesa (coordenadas relativas ao canto superior esquerdo).
const (
	TableW  = 1000
	TableH  = 680
	Padding = 16
)

// Grade de colocação dentro de uma zona.
const (
	PlacedSize  = 64
	GridCols    = 4
	GridGap     = 8
	ZoneHeaderH = 28
)

const (
	gridW = TableW - Padding*2
	gridH = TableH - Padding*3 - 8
	cellW = float64(gridW-Padding*2) / 3
	cellH = float64(gridH-Padding) / 2
)

// ErrUnknownZone é devolvido quando o id da zona não existe.
var ErrUnknownZone = errors.New("zone not found")

// Point é uma posição do ponteiro relativa à mesa.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect é um retângulo alinhado aos eixos.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Center é o centro do retângulo.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains inclui as bordas.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Zone é uma região alvo ligada a exatamente uma categoria.
type Zone struct {
	ID       string              `json:"id"`
	Label    string              `json:"label"`
	Category instrument.Category `json:"category"`
	Bounds   Rect                `json:"bounds"`
}

func cell(col, row int) Rect {
	return Rect{
		X: Padding + float64(col)*(cellW+Padding),
		Y: Padding + float64(row)*(cellH+Padding),
		W: cellW,
		H: cellH,
	}
}

// zones é a tabela fixa, na ordem de desenho.
var zones = []Zone{
	{ID: "z1", Label: "Afastadores", Category: instrument.Afastadores, Bounds: cell(0, 0)},
	{ID: "z2", Label: "Especiais", Category: instrument.Especiais, Bounds: cell(1, 0)},
	{ID: "z3", Label: "Síntese", Category: instrument.Sintese, Bounds: cell(2, 0)},
	{ID: "z4", Label: "Preensão", Category: instrument.Preensao, Bounds: cell(0, 1)},
	{ID: "z5", Label: "Hemostasia", Category: instrument.Hemostasia, Bounds: cell(1, 1)},
	{ID: "z6", Label: "Diérese", Category: instrument.Dierese, Bounds: cell(2, 1)},
}

// Zones devolve uma cópia da tabela de zonas.
func Zones() []Zone {
	out := make([]Zone, len(zones))
	copy(out, zones)
	return out
}

// ZoneByID busca uma zona.
func ZoneByID(id string) (Zone, error) {
	for _, z := range zones {
		if z.ID == id {
			return z, nil
		}
	}
	return Zone{}, fmt.Errorf("%w: %s", ErrUnknownZone, id)
}

// ZoneForCategory devolve a única zona de uma categoria.
func ZoneForCategory(c instrument.Category) (Zone, error) {
	for _, z := range zones {
		if z.Category == c {
			return z, nil
		}
	}
	return Zone{}, fmt.Errorf("%w: no zone for category %s", ErrUnknownZone, c)
}

// ZoneAt devolve a zona sob o ponteiro, se houver.
func ZoneAt(p Point) (Zone, bool) {
	for _, z := range zones {
		if z.Bounds.Contains(p) {
			return z, true
		}
	}
	return Zone{}, false
}
