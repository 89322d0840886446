package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"mesacirurgica/internal/game"
	"mesacirurgica/internal/game/board"
	"mesacirurgica/internal/network"
	"mesacirurgica/internal/utils"
)

// terminal imprime as mensagens do servidor e guarda o estado da partida.
// Handle roda na goroutine de leitura; State na de entrada.
type terminal struct {
	mu    sync.Mutex
	out   io.Writer
	state string
}

func newTerminal(out io.Writer) *terminal {
	return &terminal{out: out, state: StateTutorial}
}

func (t *terminal) State() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *terminal) setState(s string) {
	if s == "" {
		return
	}
	t.mu.Lock()
	t.state = s
	t.mu.Unlock()
}

func (t *terminal) Prompt() {
	fmt.Fprint(t.out, menu(t.State()))
}

func (t *terminal) Handle(msg network.Message) {
	switch msg.Type {
	case "RESPONSE_SUCCESS":
		var p struct {
			State   string `json:"state"`
			Message string `json:"message"`
		}
		if json.Unmarshal(msg.Payload, &p) != nil {
			break
		}
		t.setState(p.State)
		fmt.Fprintf(t.out, "\n%s\n", p.Message)
		return
	case "RESPONSE_ERROR":
		var p struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(msg.Payload, &p) != nil {
			break
		}
		fmt.Fprintf(t.out, "\nErro: %s\n", p.Error)
		return
	case "BOARD_STATE":
		var s game.Snapshot
		if json.Unmarshal(msg.Payload, &s) != nil {
			break
		}
		t.setState(string(s.State))
		t.renderBoard(s)
		return
	case "REPORT":
		var r board.Report
		if json.Unmarshal(msg.Payload, &r) != nil {
			break
		}
		t.renderReport(r)
		return
	case "PROMPT_INPUT":
		t.Prompt()
		return
	}
	fmt.Fprintf(t.out, "\nInfo (%s): %s\n", msg.Type, string(msg.Payload))
}

func (t *terminal) renderBoard(s game.Snapshot) {
	fmt.Fprintf(t.out, "\n%s: %q\n", s.Evaluator.Name, s.Evaluator.Thought)
	if s.Tutorial != nil {
		fmt.Fprintf(t.out, "Tutorial %d/%d: %s\n", s.Tutorial.Index+1, s.Tutorial.Total, s.Tutorial.Step.Text)
	}

	zones := make(map[string][]string, len(s.Placements))
	for id, items := range s.Placements {
		label := id
		if s.ZoneErrors[id] {
			label += " (ERRO)"
		}
		zones[label] = items
	}
	fmt.Fprint(t.out, utils.MapToString("Mesa", zones))
	fmt.Fprint(t.out, utils.SliceToString("Lista", s.Unplaced))
	timer := "parado"
	if s.TimerStarted {
		timer = "rodando"
	}
	fmt.Fprintf(t.out, "Colocados: %d/%d | Cronômetro: %s\n", s.Placed, s.Total, timer)
}

func (t *terminal) renderReport(r board.Report) {
	fmt.Fprintf(t.out, "\n===== Relatório (%s) =====\n", r.FinishedAtISO)
	fmt.Fprintf(t.out, "Tempo: %ds | Acertos: %d/%d | Corrigidos: %d\n",
		r.TimeSec, r.CorrectItems, r.TotalItems, r.CorrectedItems)

	var corrected []string
	for _, item := range r.PerItem {
		if item.Corrected {
			corrected = append(corrected, fmt.Sprintf("%s (tentou %v)", item.Item, item.WrongZonesTried))
		}
	}
	fmt.Fprint(t.out, utils.SliceToString("Corrigidos", corrected))
}
