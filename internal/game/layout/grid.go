package layout

import "math"

// GridIndex mapeia o ponteiro para o índice da célula da grade dentro da zona
// (GridCols colunas, linhas ilimitadas). Pontos acima ou à esquerda da grade caem na célula 0.
func GridIndex(z Zone, p Point) int {
	relX := math.Max(0, p.X-(z.Bounds.X+GridGap))
	relY := math.Max(0, p.Y-(z.Bounds.Y+ZoneHeaderH))
	col := int(math.Min(GridCols-1, math.Floor(relX/(PlacedSize+GridGap))))
	row := int(math.Max(0, math.Floor(relY/(PlacedSize+GridGap))))
	return row*GridCols + col
}

// SlotOrigin é o canto superior esquerdo da miniatura na posição idx.
func SlotOrigin(z Zone, idx int) Point {
	row, col := idx/GridCols, idx%GridCols
	return Point{
		X: z.Bounds.X + GridGap + float64(col)*(PlacedSize+GridGap),
		Y: z.Bounds.Y + ZoneHeaderH + float64(row)*(PlacedSize+GridGap),
	}
}

// SlotCenter é o centro da miniatura na posição idx. Soltar o ponteiro ali resolve
// para a mesma zona e para o mesmo índice.
func SlotCenter(z Zone, idx int) Point {
	o := SlotOrigin(z, idx)
	return Point{X: o.X + PlacedSize/2, Y: o.Y + PlacedSize/2}
}

// SlotCount é quantas células cabem na zona com o centro visível.
func SlotCount(z Zone) int {
	rows := int(math.Floor((z.Bounds.H-ZoneHeaderH-PlacedSize/2)/(PlacedSize+GridGap))) + 1
	return GridCols * max(0, rows)
}
