// Package drag controla o arraste de um instrumento, do pointer-down até a resolução
// do destino. Há no máximo um arraste ativo por partida.
package drag

import (
	"errors"
	"fmt"

	"mesacirurgica/internal/game/board"
	"mesacirurgica/internal/game/layout"
)

var (
	ErrDragInProgress = errors.New("a drag is already in progress")
	ErrNoDrag         = errors.New("no drag in progress")
	ErrInvalidSource  = errors.New("invalid drag source")
)

// Phase é o estado do controlador.
type Phase string

const (
	Idle      Phase = "IDLE"
	Dragging  Phase = "DRAGGING"
	Resolving Phase = "RESOLVING"
)

func isAllowedTransition(from, to Phase) bool {
	switch from {
	case Idle:
		return to == Dragging
	case Dragging:
		return to == Resolving
	case Resolving:
		return to == Idle
	default:
		return false
	}
}

// Source indica de onde o instrumento foi pego.
type Source string

const (
	SourceList   Source = "list"
	SourcePlaced Source = "placed"
)

func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceList, SourcePlaced:
		return Source(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSource, s)
}

// Action é o efeito da soltura sobre a mesa.
type Action string

const (
	ActionNone      Action = "none"
	ActionAdded     Action = "added"
	ActionMoved     Action = "moved"
	ActionReordered Action = "reordered"
	ActionRemoved   Action = "removed"
)

// Preview é o arraste em andamento: a miniatura flutuante segue Pointer.
type Preview struct {
	InstrumentID string       `json:"instrumentId"`
	Source       Source       `json:"source"`
	Pointer      layout.Point `json:"pointer"`
}

// Drop é o resultado da resolução.
type Drop struct {
	Action    Action
	Placement board.Placement
}

type Controller struct {
	board  *board.Board
	phase  Phase
	active *Preview
}

func NewController(b *board.Board) *Controller {
	return &Controller{board: b, phase: Idle}
}

func (c *Controller) Phase() Phase { return c.phase }

// Preview devolve o arraste ativo, se houver.
func (c *Controller) Preview() (Preview, bool) {
	if c.active == nil {
		return Preview{}, false
	}
	return *c.active, true
}

func (c *Controller) transition(to Phase) error {
	if !isAllowedTransition(c.phase, to) {
		return fmt.Errorf("drag: disallowed transition %s -> %s", c.phase, to)
	}
	c.phase = to
	return nil
}

// Begin inicia o arraste. Um segundo Begin com arraste ativo é recusado sem alterar nada.
// Iniciar um arraste apaga os destaques da última checagem.
func (c *Controller) Begin(instrumentID string, src Source, p layout.Point) error {
	if c.phase != Idle {
		return ErrDragInProgress
	}
	if _, err := ParseSource(string(src)); err != nil {
		return err
	}
	if _, err := c.board.Instrument(instrumentID); err != nil {
		return err
	}
	if src == SourcePlaced && !c.board.IsPlaced(instrumentID) {
		return fmt.Errorf("%w: %s", board.ErrNotPlaced, instrumentID)
	}
	if err := c.transition(Dragging); err != nil {
		return err
	}
	c.active = &Preview{InstrumentID: instrumentID, Source: src, Pointer: p}
	c.board.ClearHighlights()
	return nil
}

// Move atualiza a posição da prévia.
func (c *Controller) Move(p layout.Point) error {
	if c.phase != Dragging {
		return ErrNoDrag
	}
	c.active.Pointer = p
	return nil
}

// End solta o instrumento em p.
func (c *Controller) End(p layout.Point) (Drop, error) {
	if c.phase != Dragging {
		return Drop{Action: ActionNone}, ErrNoDrag
	}
	c.active.Pointer = p
	return c.resolve()
}

// Cancel resolve como uma soltura na última posição conhecida.
func (c *Controller) Cancel() (Drop, error) {
	if c.phase != Dragging {
		return Drop{Action: ActionNone}, ErrNoDrag
	}
	return c.resolve()
}

// Reset descarta qualquer arraste sem resolvê-lo.
func (c *Controller) Reset() {
	c.phase = Idle
	c.active = nil
}

func (c *Controller) resolve() (Drop, error) {
	if err := c.transition(Resolving); err != nil {
		return Drop{Action: ActionNone}, err
	}
	d := *c.active
	drop, err := c.apply(d)

	c.active = nil
	if terr := c.transition(Idle); terr != nil && err == nil {
		err = terr
	}
	return drop, err
}

func (c *Controller) apply(d Preview) (Drop, error) {
	id := d.InstrumentID
	zone, onZone := layout.ZoneAt(d.Pointer)
	current, placed := c.board.ZoneOf(id)

	if !onZone {
		// Fora das zonas só volta para a lista quem foi pego da mesa.
		if d.Source == SourcePlaced && placed {
			p, err := c.board.Remove(id)
			return Drop{Action: ActionRemoved, Placement: p}, err
		}
		return Drop{Action: ActionNone}, nil
	}

	if !placed {
		p, err := c.board.Add(id, zone.ID)
		return Drop{Action: ActionAdded, Placement: p}, err
	}

	p, err := c.board.Move(id, zone.ID, layout.GridIndex(zone, d.Pointer))
	if err != nil {
		return Drop{Action: ActionNone}, err
	}
	switch {
	case current != zone.ID:
		return Drop{Action: ActionMoved, Placement: p}, nil
	case p.Changed:
		return Drop{Action: ActionReordered, Placement: p}, nil
	default:
		return Drop{Action: ActionNone, Placement: p}, nil
	}
}
