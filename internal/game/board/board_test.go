package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesacirurgica/internal/clock"
	"mesacirurgica/internal/game/instrument"
	"mesacirurgica/internal/game/layout"
)

// Zonas usadas nos testes (ver layout).
const (
	zSintese    = "z3"
	zHemostasia = "z5"
	zDierese    = "z6"
	zEspeciais  = "z2"
)

var t0 = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func smallCatalog(t *testing.T) *instrument.Catalog {
	t.Helper()
	lamina, err := instrument.New("Lâmina 10", instrument.Dierese, "Lamina 10")
	require.NoError(t, err)
	kelly, err := instrument.New("Pinça Kelly curva (1)", instrument.Hemostasia, "")
	require.NoError(t, err)
	cuba, err := instrument.New("Cuba Rim", instrument.Especiais, "")
	require.NoError(t, err)
	c, err := instrument.NewCatalog(lamina, kelly, cuba)
	require.NoError(t, err)
	return c
}

func newBoard(t *testing.T) (*Board, *clock.Manual) {
	clk := clock.NewManual(t0)
	return New(smallCatalog(t), clk), clk
}

// assertUnique verifica que nenhum instrumento aparece em duas zonas.
func assertUnique(t *testing.T, b *Board) {
	t.Helper()
	seen := map[string]string{}
	for z, seq := range b.Placements() {
		for _, id := range seq {
			prev, dup := seen[id]
			assert.False(t, dup, "%s em %s e %s", id, prev, z)
			seen[id] = z
		}
	}
}

func TestAdd_CorrectZoneNeverMarksWrong(t *testing.T) {
	b, _ := newBoard(t)

	p, err := b.Add("pinca-kelly-curva-1", zHemostasia)
	require.NoError(t, err)
	assert.True(t, p.Correct)
	assert.True(t, p.Changed)
	assert.False(t, b.EverWrong("pinca-kelly-curva-1"))
	assert.Empty(t, b.WrongZones("pinca-kelly-curva-1"))

	z, ok := b.ZoneOf("pinca-kelly-curva-1")
	assert.True(t, ok)
	assert.Equal(t, zHemostasia, z)
}

func TestAdd_WrongZoneMarksWrong(t *testing.T) {
	b, _ := newBoard(t)

	p, err := b.Add("pinca-kelly-curva-1", zDierese)
	require.NoError(t, err)
	assert.False(t, p.Correct)
	assert.True(t, b.EverWrong("pinca-kelly-curva-1"))
	assert.Equal(t, []string{zDierese}, b.WrongZones("pinca-kelly-curva-1"))
}

func TestAdd_Errors(t *testing.T) {
	b, _ := newBoard(t)

	_, err := b.Add("bisturi-eletrico", zDierese)
	assert.ErrorIs(t, err, instrument.ErrUnknownInstrument)

	_, err = b.Add("lamina-10", "z9")
	assert.ErrorIs(t, err, layout.ErrUnknownZone)

	_, err = b.Add("lamina-10", zDierese)
	require.NoError(t, err)
	_, err = b.Add("lamina-10", zSintese)
	assert.ErrorIs(t, err, ErrAlreadyPlaced)
	assertUnique(t, b)
}

func TestMove_OtherZone(t *testing.T) {
	b, _ := newBoard(t)
	_, err := b.Add("lamina-10", zSintese)
	require.NoError(t, err)
	_, err = b.Add("cuba-rim", zDierese)
	require.NoError(t, err)

	p, err := b.Move("lamina-10", zDierese, 0)
	require.NoError(t, err)
	assert.Equal(t, zSintese, p.From)
	assert.Equal(t, zDierese, p.To)
	assert.True(t, p.Correct)
	assert.True(t, p.Changed)

	// Vai para o fim da zona, não para o índice pedido.
	assert.Equal(t, []string{"cuba-rim", "lamina-10"}, b.Placements()[zDierese])
	assert.Empty(t, b.Placements()[zSintese])
	assertUnique(t, b)

	// O erro anterior continua registrado.
	assert.True(t, b.EverWrong("lamina-10"))
}

func TestMove_ReorderSwaps(t *testing.T) {
	b, _ := newBoard(t)
	for _, id := range []string{"lamina-10", "cuba-rim", "pinca-kelly-curva-1"} {
		_, err := b.Add(id, zDierese)
		require.NoError(t, err)
	}

	p, err := b.Move("pinca-kelly-curva-1", zDierese, 0)
	require.NoError(t, err)
	assert.True(t, p.Changed)
	assert.Equal(t, []string{"pinca-kelly-curva-1", "cuba-rim", "lamina-10"}, b.Placements()[zDierese])

	// Índice além do fim é limitado ao último.
	_, err = b.Move("pinca-kelly-curva-1", zDierese, 11)
	require.NoError(t, err)
	assert.Equal(t, []string{"lamina-10", "cuba-rim", "pinca-kelly-curva-1"}, b.Placements()[zDierese])
}

func TestMove_ReorderSameIndexIsNoop(t *testing.T) {
	b, _ := newBoard(t)
	for _, id := range []string{"lamina-10", "cuba-rim"} {
		_, err := b.Add(id, zDierese)
		require.NoError(t, err)
	}
	before := b.Placements()

	p, err := b.Move("cuba-rim", zDierese, 1)
	require.NoError(t, err)
	assert.False(t, p.Changed)
	assert.Equal(t, before, b.Placements())
}

func TestMove_NotPlaced(t *testing.T) {
	b, _ := newBoard(t)
	_, err := b.Move("lamina-10", zDierese, 0)
	assert.ErrorIs(t, err, ErrNotPlaced)

	_, err = b.Remove("lamina-10")
	assert.ErrorIs(t, err, ErrNotPlaced)
}

func TestRemove_BackToList(t *testing.T) {
	b, _ := newBoard(t)
	_, err := b.Add("lamina-10", zDierese)
	require.NoError(t, err)

	p, err := b.Remove("lamina-10")
	require.NoError(t, err)
	assert.Equal(t, zDierese, p.From)
	assert.Empty(t, p.To)
	assert.False(t, b.IsPlaced("lamina-10"))
	assert.Equal(t, []string{"lamina-10"}, b.Unplaced(b.catalog.All())[:1])
}

func TestWrongZones_InsertionOrderWithoutDuplicates(t *testing.T) {
	b, _ := newBoard(t)
	_, err := b.Add("lamina-10", zSintese)
	require.NoError(t, err)
	_, err = b.Move("lamina-10", zEspeciais, 0)
	require.NoError(t, err)
	_, err = b.Move("lamina-10", zSintese, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{zSintese, zEspeciais}, b.WrongZones("lamina-10"))
}

func placeAllCorrect(t *testing.T, b *Board) {
	t.Helper()
	for _, inst := range b.catalog.All() {
		z, err := layout.ZoneForCategory(inst.Category())
		require.NoError(t, err)
		if b.IsPlaced(inst.ID()) {
			_, err = b.Move(inst.ID(), z.ID, 0)
		} else {
			_, err = b.Add(inst.ID(), z.ID)
		}
		require.NoError(t, err)
	}
}

func TestCheck_IncompleteBoard(t *testing.T) {
	b, _ := newBoard(t)
	_, err := b.Add("lamina-10", zDierese)
	require.NoError(t, err)

	res := b.Check()
	assert.False(t, res.AllPlaced)
	assert.False(t, res.Complete)
	assert.Nil(t, res.Report)
	assert.Empty(t, res.ZoneErrors)
	assert.True(t, b.Checked())
}

func TestCheck_ZoneErrorsBlockCompletion(t *testing.T) {
	b, _ := newBoard(t)
	_, err := b.Add("lamina-10", zSintese)
	require.NoError(t, err)
	_, err = b.Add("pinca-kelly-curva-1", zHemostasia)
	require.NoError(t, err)
	_, err = b.Add("cuba-rim", zEspeciais)
	require.NoError(t, err)

	res := b.Check()
	assert.True(t, res.AllPlaced)
	assert.False(t, res.Complete)
	assert.Equal(t, map[string]bool{zSintese: true}, res.ZoneErrors)
	assert.Nil(t, b.Report())

	b.ClearHighlights()
	assert.False(t, b.Checked())
	assert.Empty(t, b.ZoneErrors())
}

func TestCheck_DoesNotMutateAndIsIdempotent(t *testing.T) {
	b, clk := newBoard(t)
	placeAllCorrect(t, b)
	before := b.Placements()

	first := b.Check()
	require.True(t, first.Complete)
	clk.Advance(5 * time.Second)
	second := b.Check()

	assert.Equal(t, before, b.Placements())
	assert.Same(t, first.Report, second.Report)
}

func TestReport_LaminaCorrectFirstTry(t *testing.T) {
	b, clk := newBoard(t)
	placeAllCorrect(t, b)
	clk.Advance(42*time.Second + 600*time.Millisecond)

	res := b.Check()
	require.True(t, res.Complete)
	rep := res.Report

	assert.Equal(t, "2025-03-10T14:00:42.600Z", rep.FinishedAtISO)
	assert.Equal(t, 43, rep.TimeSec)
	assert.Equal(t, 3, rep.TotalItems)
	assert.Equal(t, 3, rep.CorrectItems)
	assert.Zero(t, rep.CorrectedItems)
	assert.NotEmpty(t, rep.ID)

	item := rep.PerItem[0]
	assert.Equal(t, "Lâmina 10", item.Item)
	require.NotNil(t, item.FinalZone)
	assert.Equal(t, "Diérese", *item.FinalZone)
	assert.True(t, item.Correct)
	assert.False(t, item.Corrected)
	assert.Empty(t, item.WrongZonesTried)
}

func TestReport_LaminaCorrectedAfterSintese(t *testing.T) {
	b, _ := newBoard(t)
	_, err := b.Add("lamina-10", zSintese)
	require.NoError(t, err)
	placeAllCorrect(t, b)

	res := b.Check()
	require.True(t, res.Complete)
	item := res.Report.PerItem[0]
	assert.True(t, item.Correct)
	assert.True(t, item.Corrected)
	assert.Equal(t, []string{"Síntese"}, item.WrongZonesTried)
	assert.Equal(t, 1, res.Report.CorrectedItems)
}

func TestReport_DiscardedOnMutation(t *testing.T) {
	b, _ := newBoard(t)
	placeAllCorrect(t, b)
	require.True(t, b.Check().Complete)
	require.NotNil(t, b.Report())

	// Reordenar para o mesmo índice não muda nada.
	_, err := b.Move("lamina-10", zDierese, 0)
	require.NoError(t, err)
	assert.NotNil(t, b.Report())

	_, err = b.Remove("lamina-10")
	require.NoError(t, err)
	assert.Nil(t, b.Report())
}

func TestReport_TimeZeroWhenNeverStarted(t *testing.T) {
	assert.Equal(t, 0, elapsedSeconds(time.Time{}, t0))
	assert.Equal(t, 0, elapsedSeconds(t0, t0.Add(-time.Second)))
	assert.Equal(t, 2, elapsedSeconds(t0, t0.Add(1500*time.Millisecond)))
}

func TestTimer_StartsOnFirstPlacementOnly(t *testing.T) {
	b, clk := newBoard(t)
	assert.False(t, b.Started())

	clk.Advance(10 * time.Second)
	_, err := b.Add("lamina-10", zDierese)
	require.NoError(t, err)
	assert.Equal(t, t0.Add(10*time.Second), b.startedAt)

	clk.Advance(3 * time.Second)
	_, err = b.Add("cuba-rim", zEspeciais)
	require.NoError(t, err)
	assert.Equal(t, t0.Add(10*time.Second), b.startedAt)
}

func TestReset_ClearsEverything(t *testing.T) {
	b, _ := newBoard(t)
	_, err := b.Add("lamina-10", zSintese)
	require.NoError(t, err)
	placeAllCorrect(t, b)
	require.True(t, b.Check().Complete)

	b.Reset()

	assert.Zero(t, b.PlacedCount())
	assert.False(t, b.Started())
	assert.False(t, b.Checked())
	assert.Nil(t, b.Report())
	assert.False(t, b.EverWrong("lamina-10"))
	assert.Nil(t, b.WrongZones("lamina-10"))
	for _, z := range layout.Zones() {
		assert.Empty(t, b.Placements()[z.ID])
	}
}
