package game

import (
	"mesacirurgica/internal/game/board"
	"mesacirurgica/internal/game/drag"
	"mesacirurgica/internal/game/layout"
)

// offTable é um ponto fora de todas as zonas.
var offTable = layout.Point{X: -1, Y: -1}

func (g *Game) requireBoard() error {
	if g.state == StateTutorial {
		return ErrTutorialActive
	}
	return nil
}

// PointerDown inicia o arraste de um instrumento da lista ou da mesa.
func (g *Game) PointerDown(instrumentID string, src drag.Source, p layout.Point) error {
	if err := g.requireBoard(); err != nil {
		return err
	}
	return g.drag.Begin(instrumentID, src, p)
}

// PointerMove atualiza a prévia flutuante.
func (g *Game) PointerMove(p layout.Point) error {
	if err := g.requireBoard(); err != nil {
		return err
	}
	return g.drag.Move(p)
}

// PointerUp resolve o arraste no ponto p.
func (g *Game) PointerUp(p layout.Point) (drag.Drop, error) {
	if err := g.requireBoard(); err != nil {
		return drag.Drop{Action: drag.ActionNone}, err
	}
	d, err := g.drag.End(p)
	g.afterDrop()
	return d, err
}

// PointerCancel resolve o arraste na última posição conhecida.
func (g *Game) PointerCancel() (drag.Drop, error) {
	if err := g.requireBoard(); err != nil {
		return drag.Drop{Action: drag.ActionNone}, err
	}
	d, err := g.drag.Cancel()
	g.afterDrop()
	return d, err
}

// Place faz um arraste completo a partir da origem atual do instrumento.
// zoneID vazio solta fora da mesa. Sem index, solta no centro da zona, ou na própria
// célula quando o instrumento já está nela.
func (g *Game) Place(instrumentID, zoneID string, index *int) (drag.Drop, error) {
	if err := g.requireBoard(); err != nil {
		return drag.Drop{Action: drag.ActionNone}, err
	}

	src := drag.SourceList
	current, placed := g.board.ZoneOf(instrumentID)
	if placed {
		src = drag.SourcePlaced
	}

	target := offTable
	if zoneID != "" {
		zone, err := layout.ZoneByID(zoneID)
		if err != nil {
			return drag.Drop{Action: drag.ActionNone}, err
		}
		switch {
		case index != nil:
			target = layout.SlotCenter(zone, min(max(0, *index), layout.SlotCount(zone)-1))
		case placed && current == zone.ID:
			target = layout.SlotCenter(zone, g.slotOf(zone.ID, instrumentID))
		default:
			target = zone.Bounds.Center()
		}
	}

	if err := g.drag.Begin(instrumentID, src, target); err != nil {
		return drag.Drop{Action: drag.ActionNone}, err
	}
	return g.PointerUp(target)
}

func (g *Game) slotOf(zoneID, instrumentID string) int {
	for i, id := range g.board.Placements()[zoneID] {
		if id == instrumentID {
			return i
		}
	}
	return 0
}

// Check valida a mesa. Com a mesa completa a partida passa a Completed.
func (g *Game) Check() (board.Result, error) {
	if err := g.requireBoard(); err != nil {
		return board.Result{}, err
	}
	res := g.board.Check()
	if res.Complete {
		res.Report.Evaluator = g.evaluator.ID
		g.state = StateCompleted
	} else {
		g.state = StatePlaying
	}
	return res, nil
}

// afterDrop reabre a partida quando uma mudança descartou o relatório.
func (g *Game) afterDrop() {
	if g.state == StateCompleted && g.board.Report() == nil {
		g.state = StatePlaying
	}
}
