// Package game junta catálogo, mesa, arraste e tutorial numa partida.
// Uma Game pertence a um único aluno e não é segura para uso concorrente:
// quem a chama (o hub) serializa os eventos.
package game

import (
	"errors"
	"math/rand/v2"
	"time"

	"mesacirurgica/internal/clock"
	"mesacirurgica/internal/game/board"
	"mesacirurgica/internal/game/drag"
	"mesacirurgica/internal/game/evaluator"
	"mesacirurgica/internal/game/instrument"
	"mesacirurgica/internal/game/tutorial"
)

// State é a fase da partida.
type State string

const (
	StateTutorial  State = "TUTORIAL"
	StatePlaying   State = "PLAYING"
	StateCompleted State = "COMPLETED"
)

var (
	ErrTutorialActive = errors.New("board is locked while the tutorial is open")
	ErrNotInTutorial  = errors.New("tutorial already finished")
	ErrNoReport       = errors.New("no report available")
)

type Game struct {
	catalog   *instrument.Catalog
	evaluator evaluator.Evaluator
	clock     clock.Clock
	rng       *rand.Rand
	joinedAt  time.Time

	state    State
	list     instrument.List
	board    *board.Board
	drag     *drag.Controller
	tutorial *tutorial.Stepper
}

// New cria a partida no tutorial, com a lista na ordem do catálogo.
func New(catalog *instrument.Catalog, ev evaluator.Evaluator, clk clock.Clock, rng *rand.Rand) *Game {
	b := board.New(catalog, clk)
	return &Game{
		catalog:   catalog,
		evaluator: ev,
		clock:     clk,
		rng:       rng,
		joinedAt:  clk.Now(),
		state:     StateTutorial,
		list:      catalog.All(),
		board:     b,
		drag:      drag.NewController(b),
		tutorial:  tutorial.NewStepper(),
	}
}

func (g *Game) State() State                   { return g.state }
func (g *Game) Evaluator() evaluator.Evaluator { return g.evaluator }
func (g *Game) Board() *board.Board            { return g.board }
func (g *Game) List() instrument.List          { return g.list }

// Thought é o pensamento do avaliador visível agora.
func (g *Game) Thought() string {
	return g.evaluator.Thought(g.clock.Now().Sub(g.joinedAt))
}

// Report devolve o relatório da partida concluída.
func (g *Game) Report() (*board.Report, error) {
	if g.state != StateCompleted || g.board.Report() == nil {
		return nil, ErrNoReport
	}
	return g.board.Report(), nil
}

// Reset volta ao tutorial com a mesa vazia e a lista embaralhada.
func (g *Game) Reset() {
	g.drag.Reset()
	g.board.Reset()
	g.list.Shuffle(g.rng)
	g.tutorial.Restart()
	g.state = StateTutorial
}
