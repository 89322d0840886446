package drag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesacirurgica/internal/clock"
	"mesacirurgica/internal/game/board"
	"mesacirurgica/internal/game/instrument"
	"mesacirurgica/internal/game/layout"
)

func newController(t *testing.T) (*Controller, *board.Board) {
	t.Helper()
	b := board.New(instrument.MustLoad(), clock.NewManual(time.Unix(0, 0)))
	return NewController(b), b
}

func zone(t *testing.T, id string) layout.Zone {
	t.Helper()
	z, err := layout.ZoneByID(id)
	require.NoError(t, err)
	return z
}

// outside é um ponto no espaço entre as zonas.
var outside = layout.Point{X: 336, Y: 100}

// drag faz um arraste completo, de pointer-down até pointer-up.
func drag(t *testing.T, c *Controller, id string, src Source, to layout.Point) Drop {
	t.Helper()
	require.NoError(t, c.Begin(id, src, layout.Point{X: 0, Y: 0}))
	require.NoError(t, c.Move(to))
	d, err := c.End(to)
	require.NoError(t, err)
	assert.Equal(t, Idle, c.Phase())
	return d
}

func TestDrag_ListToZoneAdds(t *testing.T) {
	c, b := newController(t)
	d := drag(t, c, "lamina-10", SourceList, zone(t, "z6").Bounds.Center())

	assert.Equal(t, ActionAdded, d.Action)
	assert.True(t, d.Placement.Correct)
	z, _ := b.ZoneOf("lamina-10")
	assert.Equal(t, "z6", z)
}

func TestDrag_ListOutsideIsNoop(t *testing.T) {
	c, b := newController(t)
	d := drag(t, c, "lamina-10", SourceList, outside)
	assert.Equal(t, ActionNone, d.Action)
	assert.False(t, b.IsPlaced("lamina-10"))

	// Já colocado e arrastado da lista para fora: continua onde estava.
	drag(t, c, "lamina-10", SourceList, zone(t, "z6").Bounds.Center())
	d = drag(t, c, "lamina-10", SourceList, outside)
	assert.Equal(t, ActionNone, d.Action)
	assert.True(t, b.IsPlaced("lamina-10"))
}

func TestDrag_PlacedOutsideRemoves(t *testing.T) {
	c, b := newController(t)
	drag(t, c, "lamina-10", SourceList, zone(t, "z6").Bounds.Center())

	d := drag(t, c, "lamina-10", SourcePlaced, layout.Point{X: -5, Y: 900})
	assert.Equal(t, ActionRemoved, d.Action)
	assert.False(t, b.IsPlaced("lamina-10"))
}

func TestDrag_ListOntoOtherZoneMoves(t *testing.T) {
	c, b := newController(t)
	drag(t, c, "lamina-10", SourceList, zone(t, "z3").Bounds.Center())

	d := drag(t, c, "lamina-10", SourceList, zone(t, "z6").Bounds.Center())
	assert.Equal(t, ActionMoved, d.Action)
	assert.Equal(t, "z3", d.Placement.From)
	z, _ := b.ZoneOf("lamina-10")
	assert.Equal(t, "z6", z)
	assert.Equal(t, []string{"z3"}, b.WrongZones("lamina-10"))
}

func TestDrag_ReorderInsideZone(t *testing.T) {
	c, b := newController(t)
	z6 := zone(t, "z6")
	for _, id := range []string{"lamina-10", "lamina-20", "cureta"} {
		drag(t, c, id, SourceList, z6.Bounds.Center())
	}

	// Soltar sobre a própria célula não muda nada.
	d := drag(t, c, "lamina-20", SourcePlaced, layout.SlotCenter(z6, 1))
	assert.Equal(t, ActionNone, d.Action)
	assert.Equal(t, []string{"lamina-10", "lamina-20", "cureta"}, b.Placements()["z6"])

	d = drag(t, c, "cureta", SourcePlaced, layout.SlotCenter(z6, 0))
	assert.Equal(t, ActionReordered, d.Action)
	assert.Equal(t, []string{"cureta", "lamina-20", "lamina-10"}, b.Placements()["z6"])

	// Reordenar na zona errada registra a tentativa de novo, sem duplicar.
	assert.Equal(t, []string{"z6"}, b.WrongZones("cureta"))
}

func TestBegin_SecondDragIgnored(t *testing.T) {
	c, _ := newController(t)
	require.NoError(t, c.Begin("lamina-10", SourceList, layout.Point{}))

	err := c.Begin("cureta", SourceList, layout.Point{X: 9, Y: 9})
	assert.ErrorIs(t, err, ErrDragInProgress)

	p, ok := c.Preview()
	require.True(t, ok)
	assert.Equal(t, "lamina-10", p.InstrumentID)
	assert.Equal(t, layout.Point{}, p.Pointer)
}

func TestBegin_Rejections(t *testing.T) {
	c, _ := newController(t)

	assert.ErrorIs(t, c.Begin("bisturi-eletrico", SourceList, layout.Point{}), instrument.ErrUnknownInstrument)
	assert.ErrorIs(t, c.Begin("lamina-10", SourcePlaced, layout.Point{}), board.ErrNotPlaced)
	assert.ErrorIs(t, c.Begin("lamina-10", Source("mesa"), layout.Point{}), ErrInvalidSource)
	assert.Equal(t, Idle, c.Phase())
}

func TestBegin_ClearsHighlights(t *testing.T) {
	c, b := newController(t)
	drag(t, c, "lamina-10", SourceList, zone(t, "z3").Bounds.Center())
	b.Check()
	require.True(t, b.Checked())
	require.True(t, b.ZoneErrors()["z3"])

	require.NoError(t, c.Begin("lamina-10", SourcePlaced, layout.Point{}))
	assert.False(t, b.Checked())
	assert.Empty(t, b.ZoneErrors())
}

func TestNoDrag_MoveAndEndIgnored(t *testing.T) {
	c, b := newController(t)
	assert.ErrorIs(t, c.Move(layout.Point{X: 1}), ErrNoDrag)

	d, err := c.End(zone(t, "z6").Bounds.Center())
	assert.ErrorIs(t, err, ErrNoDrag)
	assert.Equal(t, ActionNone, d.Action)

	_, err = c.Cancel()
	assert.ErrorIs(t, err, ErrNoDrag)
	assert.Zero(t, b.PlacedCount())
}

func TestCancel_ResolvesAtLastPosition(t *testing.T) {
	c, b := newController(t)
	require.NoError(t, c.Begin("lamina-10", SourceList, layout.Point{}))
	require.NoError(t, c.Move(zone(t, "z6").Bounds.Center()))

	d, err := c.Cancel()
	require.NoError(t, err)
	assert.Equal(t, ActionAdded, d.Action)
	assert.True(t, b.IsPlaced("lamina-10"))
	assert.Equal(t, Idle, c.Phase())
	_, ok := c.Preview()
	assert.False(t, ok)
}

func TestTransitions(t *testing.T) {
	assert.True(t, isAllowedTransition(Idle, Dragging))
	assert.True(t, isAllowedTransition(Dragging, Resolving))
	assert.True(t, isAllowedTransition(Resolving, Idle))
	assert.False(t, isAllowedTransition(Idle, Resolving))
	assert.False(t, isAllowedTransition(Dragging, Idle))
}
