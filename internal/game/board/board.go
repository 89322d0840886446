// Package board guarda o estado da mesa: em qual zona está cada instrumento,
// o histórico de tentativas erradas e o relatório final.
//
// Invariante: um instrumento aparece no máximo em uma zona.
package board

import (
	"fmt"
	"slices"
	"time"

	"mesacirurgica/internal/clock"
	"mesacirurgica/internal/game/instrument"
	"mesacirurgica/internal/game/layout"
)

// attempts é o histórico monotônico de um instrumento.
type attempts struct {
	everWrong  bool
	wrongZones []string // ordem de inserção, sem repetição
}

// Placement descreve o efeito de uma operação sobre a mesa.
type Placement struct {
	InstrumentID string
	From         string // zona de origem, "" se veio da lista
	To           string // zona de destino, "" se voltou para a lista
	Correct      bool   // categoria da zona de destino bate com a do instrumento
	Changed      bool   // a sequência de alguma zona mudou
}

type Board struct {
	catalog *instrument.Catalog
	clock   clock.Clock

	placements map[string][]string // zona -> ids na ordem da grade
	location   map[string]string   // id -> zona
	history    map[string]*attempts

	startedAt  time.Time
	checked    bool
	zoneErrors map[string]bool
	report     *Report
}

// New cria uma mesa vazia.
func New(catalog *instrument.Catalog, clk clock.Clock) *Board {
	b := &Board{catalog: catalog, clock: clk}
	b.Reset()
	return b
}

// Reset esvazia as zonas e apaga histórico, cronômetro, destaques e relatório.
func (b *Board) Reset() {
	b.placements = make(map[string][]string)
	for _, z := range layout.Zones() {
		b.placements[z.ID] = []string{}
	}
	b.location = make(map[string]string)
	b.history = make(map[string]*attempts)
	b.startedAt = time.Time{}
	b.report = nil
	b.ClearHighlights()
}

// ClearHighlights apaga o resultado visual da última checagem.
func (b *Board) ClearHighlights() {
	b.checked = false
	b.zoneErrors = make(map[string]bool)
}

// ZoneOf informa a zona atual do instrumento.
func (b *Board) ZoneOf(instrumentID string) (string, bool) {
	z, ok := b.location[instrumentID]
	return z, ok
}

// Instrument busca no catálogo da mesa.
func (b *Board) Instrument(id string) (*instrument.Instrument, error) {
	return b.catalog.Get(id)
}

func (b *Board) IsPlaced(instrumentID string) bool {
	_, ok := b.location[instrumentID]
	return ok
}

// Add coloca um instrumento que ainda está na lista no fim da zona.
// A primeira colocação da sessão inicia o cronômetro.
func (b *Board) Add(instrumentID, zoneID string) (Placement, error) {
	inst, zone, err := b.lookup(instrumentID, zoneID)
	if err != nil {
		return Placement{}, err
	}
	if b.IsPlaced(instrumentID) {
		return Placement{}, fmt.Errorf("%w: %s", ErrAlreadyPlaced, instrumentID)
	}

	if b.startedAt.IsZero() {
		b.startedAt = b.clock.Now()
	}
	b.appendTo(instrumentID, zone.ID)
	b.report = nil

	return Placement{
		InstrumentID: instrumentID,
		To:           zone.ID,
		Correct:      b.record(inst, zone),
		Changed:      true,
	}, nil
}

// Move trata um instrumento que já está na mesa. Para outra zona: sai da origem e vai
// para o fim do destino. Para a mesma zona: troca de lugar com quem ocupa gridIndex
// (limitado ao último índice); o mesmo índice não altera nada.
func (b *Board) Move(instrumentID, zoneID string, gridIndex int) (Placement, error) {
	inst, zone, err := b.lookup(instrumentID, zoneID)
	if err != nil {
		return Placement{}, err
	}
	from, ok := b.location[instrumentID]
	if !ok {
		return Placement{}, fmt.Errorf("%w: %s", ErrNotPlaced, instrumentID)
	}

	p := Placement{InstrumentID: instrumentID, From: from, To: zone.ID}
	if from == zone.ID {
		p.Changed = b.swap(zone.ID, instrumentID, gridIndex)
	} else {
		b.removeFrom(instrumentID, from)
		b.appendTo(instrumentID, zone.ID)
		p.Changed = true
	}
	if p.Changed {
		b.report = nil
	}
	p.Correct = b.record(inst, zone)
	return p, nil
}

// Remove devolve o instrumento para a lista.
func (b *Board) Remove(instrumentID string) (Placement, error) {
	from, ok := b.location[instrumentID]
	if !ok {
		return Placement{}, fmt.Errorf("%w: %s", ErrNotPlaced, instrumentID)
	}
	b.removeFrom(instrumentID, from)
	b.report = nil
	return Placement{InstrumentID: instrumentID, From: from, Changed: true}, nil
}

func (b *Board) lookup(instrumentID, zoneID string) (*instrument.Instrument, layout.Zone, error) {
	inst, err := b.catalog.Get(instrumentID)
	if err != nil {
		return nil, layout.Zone{}, err
	}
	zone, err := layout.ZoneByID(zoneID)
	if err != nil {
		return nil, layout.Zone{}, err
	}
	return inst, zone, nil
}

func (b *Board) appendTo(instrumentID, zoneID string) {
	b.placements[zoneID] = append(b.placements[zoneID], instrumentID)
	b.location[instrumentID] = zoneID
}

func (b *Board) removeFrom(instrumentID, zoneID string) {
	seq := b.placements[zoneID]
	if i := slices.Index(seq, instrumentID); i >= 0 {
		b.placements[zoneID] = slices.Delete(seq, i, i+1)
	}
	delete(b.location, instrumentID)
}

func (b *Board) swap(zoneID, instrumentID string, target int) bool {
	seq := b.placements[zoneID]
	cur := slices.Index(seq, instrumentID)
	target = min(target, len(seq)-1)
	if cur < 0 || target < 0 || target == cur {
		return false
	}
	seq[cur], seq[target] = seq[target], seq[cur]
	return true
}

// record marca a tentativa errada (nunca desmarca) e devolve se a colocação está correta.
func (b *Board) record(inst *instrument.Instrument, zone layout.Zone) bool {
	if want, err := layout.ZoneForCategory(inst.Category()); err == nil && want.ID == zone.ID {
		return true
	}
	h, ok := b.history[inst.ID()]
	if !ok {
		h = &attempts{}
		b.history[inst.ID()] = h
	}
	h.everWrong = true
	if !slices.Contains(h.wrongZones, zone.ID) {
		h.wrongZones = append(h.wrongZones, zone.ID)
	}
	return false
}

// EverWrong informa se o instrumento já foi colocado em zona errada nesta sessão.
func (b *Board) EverWrong(instrumentID string) bool {
	h, ok := b.history[instrumentID]
	return ok && h.everWrong
}

// WrongZones devolve os ids das zonas erradas já tentadas, em ordem.
func (b *Board) WrongZones(instrumentID string) []string {
	h, ok := b.history[instrumentID]
	if !ok {
		return nil
	}
	return slices.Clone(h.wrongZones)
}

// Placements devolve uma cópia do mapa zona -> ids.
func (b *Board) Placements() map[string][]string {
	out := make(map[string][]string, len(b.placements))
	for z, seq := range b.placements {
		out[z] = slices.Clone(seq)
	}
	return out
}

// Unplaced devolve, na ordem de list, os ids que ainda não estão na mesa.
func (b *Board) Unplaced(list instrument.List) []string {
	var out []string
	for _, inst := range list {
		if !b.IsPlaced(inst.ID()) {
			out = append(out, inst.ID())
		}
	}
	return out
}

// PlacedCount é o número de instrumentos na mesa.
func (b *Board) PlacedCount() int { return len(b.location) }

// Started informa se o cronômetro já começou.
func (b *Board) Started() bool { return !b.startedAt.IsZero() }

// Checked e ZoneErrors refletem a última checagem, até o próximo arraste.
func (b *Board) Checked() bool { return b.checked }

func (b *Board) ZoneErrors() map[string]bool {
	out := make(map[string]bool, len(b.zoneErrors))
	for z, v := range b.zoneErrors {
		out[z] = v
	}
	return out
}

// Report devolve o relatório vigente, ou nil.
func (b *Board) Report() *Report { return b.report }
