package game

import (
	"mesacirurgica/internal/game/drag"
	"mesacirurgica/internal/game/tutorial"
)

// TutorialView é o passo visível do tutorial.
type TutorialView struct {
	Index int           `json:"index"`
	Total int           `json:"total"`
	Step  tutorial.Step `json:"step"`
}

type EvaluatorView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Thought string `json:"thought"`
}

// Snapshot é o estado da partida enviado ao cliente.
type Snapshot struct {
	State      State               `json:"state"`
	Tutorial   *TutorialView       `json:"tutorial"`
	Evaluator  EvaluatorView       `json:"evaluator"`
	Placements map[string][]string `json:"placements"`
	Unplaced   []string            `json:"unplaced"`
	Placed     int                 `json:"placed"`
	Total      int                 `json:"total"`
	Checked    bool                `json:"checked"`
	ZoneErrors map[string]bool     `json:"zoneErrors"`
	Preview    *drag.Preview       `json:"preview"`
	// TimerStarted liga o cronômetro na tela a partir da primeira colocação.
	TimerStarted bool `json:"timerStarted"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		State: g.state,
		Evaluator: EvaluatorView{
			ID:      g.evaluator.ID,
			Name:    g.evaluator.Name,
			Thought: g.Thought(),
		},
		Placements: g.board.Placements(),
		Unplaced:   g.board.Unplaced(g.list),
		Placed:     g.board.PlacedCount(),
		Total:      g.catalog.Len(),
		Checked:    g.board.Checked(),
		ZoneErrors: g.board.ZoneErrors(),

		TimerStarted: g.board.Started(),
	}
	if s.Unplaced == nil {
		s.Unplaced = []string{}
	}
	if step, ok := g.tutorial.Current(); ok {
		s.Tutorial = &TutorialView{Index: g.tutorial.Index(), Total: g.tutorial.Total(), Step: step}
	}
	if p, ok := g.drag.Preview(); ok {
		s.Preview = &p
	}
	return s
}
