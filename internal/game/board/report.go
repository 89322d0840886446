package board

import (
	"math"
	"time"

	"github.com/google/uuid"

	"mesacirurgica/internal/game/layout"
)

// isoMillis segue o formato de toISOString: milissegundos e sufixo Z.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// ItemReport é a linha do relatório de um instrumento.
type ItemReport struct {
	Item            string   `json:"item"`
	FinalZone       *string  `json:"finalZone"`
	Correct         bool     `json:"correct"`
	Corrected       bool     `json:"corrected"`
	WrongZonesTried []string `json:"wrongZonesTried"`
}

// Report é o resultado de uma checagem bem-sucedida.
type Report struct {
	ID             string       `json:"id"`
	Evaluator      string       `json:"evaluator,omitempty"`
	FinishedAtISO  string       `json:"finishedAtISO"`
	TimeSec        int          `json:"timeSec"`
	TotalItems     int          `json:"totalItems"`
	CorrectItems   int          `json:"correctItems"`
	CorrectedItems int          `json:"correctedItems"`
	PerItem        []ItemReport `json:"perItem"`
}

// Result é a saída de Check.
type Result struct {
	ZoneErrors map[string]bool
	AllPlaced  bool
	Complete   bool
	Report     *Report
}

// Check compara a categoria de cada instrumento colocado com a da sua zona.
// Não altera as colocações. Com a mesa completa gera o relatório; caso contrário
// descarta o anterior. Sem mudanças entre duas chamadas, o relatório é o mesmo.
func (b *Board) Check() Result {
	errs := make(map[string]bool, len(b.placements))
	for _, z := range layout.Zones() {
		for _, id := range b.placements[z.ID] {
			inst, err := b.catalog.Get(id)
			if err != nil || inst.Category() != z.Category {
				errs[z.ID] = true
				break
			}
		}
	}

	b.checked = true
	b.zoneErrors = errs

	res := Result{
		ZoneErrors: b.ZoneErrors(),
		AllPlaced:  b.PlacedCount() == b.catalog.Len(),
	}
	res.Complete = res.AllPlaced && len(errs) == 0
	if !res.Complete {
		b.report = nil
		return res
	}
	if b.report == nil {
		b.report = b.buildReport()
	}
	res.Report = b.report
	return res
}

func (b *Board) buildReport() *Report {
	end := b.clock.Now()
	rep := &Report{
		ID:            uuid.NewString(),
		FinishedAtISO: end.UTC().Format(isoMillis),
		TimeSec:       elapsedSeconds(b.startedAt, end),
		TotalItems:    b.catalog.Len(),
		PerItem:       make([]ItemReport, 0, b.catalog.Len()),
	}

	for _, inst := range b.catalog.All() {
		item := ItemReport{Item: inst.Label(), WrongZonesTried: []string{}}
		if zid, ok := b.location[inst.ID()]; ok {
			zone, err := layout.ZoneByID(zid)
			if err == nil {
				label := zone.Label
				item.FinalZone = &label
				item.Correct = zone.Category == inst.Category()
			}
		}
		item.Corrected = b.EverWrong(inst.ID()) && item.Correct
		for _, zid := range b.WrongZones(inst.ID()) {
			if zone, err := layout.ZoneByID(zid); err == nil {
				item.WrongZonesTried = append(item.WrongZonesTried, zone.Label)
			}
		}

		if item.Correct {
			rep.CorrectItems++
		}
		if item.Corrected {
			rep.CorrectedItems++
		}
		rep.PerItem = append(rep.PerItem, item)
	}
	return rep
}

func elapsedSeconds(start, end time.Time) int {
	if start.IsZero() {
		return 0
	}
	return int(math.Max(0, math.Round(end.Sub(start).Seconds())))
}
