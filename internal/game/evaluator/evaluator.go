// Package evaluator descreve os avaliadores que acompanham a partida e o balão
// de pensamentos de cada um.
package evaluator

import "time"

// ThoughtInterval é o tempo que cada pensamento fica visível.
const ThoughtInterval = 3800 * time.Millisecond

// DefaultID é usado quando o parâmetro está vazio ou é desconhecido.
const DefaultID = "otto"

type Evaluator struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Thoughts []string `json:"thoughts"`
}

var evaluators = []Evaluator{
	{
		ID:   "otto",
		Name: "Otto",
		Thoughts: []string{
			"Essa é a disciplina que mais reprova.",
			"Vocês não estão vindo na monitoria.",
			"Seu sapato é de couro?",
		},
	},
	{
		ID:   "rafael",
		Name: "Rafael",
		Thoughts: []string{
			"Se você tem dificuldade, pergunta.",
			"Vamos lá gente, o tempo tá correndo.",
			"Chegou de última hora, né...",
		},
	},
}

// All devolve os avaliadores na ordem da tela de escolha.
func All() []Evaluator {
	out := make([]Evaluator, len(evaluators))
	copy(out, evaluators)
	return out
}

// Lookup busca pelo id exato.
func Lookup(id string) (Evaluator, bool) {
	for _, e := range evaluators {
		if e.ID == id {
			return e, true
		}
	}
	return Evaluator{}, false
}

// Parse resolve o avaliador pedido, caindo no padrão quando não existe.
func Parse(id string) Evaluator {
	if e, ok := Lookup(id); ok {
		return e
	}
	e, _ := Lookup(DefaultID)
	return e
}

// FromQuery lê ?e=, depois ?eval=.
func FromQuery(get func(key string) string) Evaluator {
	id := get("e")
	if id == "" {
		id = get("eval")
	}
	return Parse(id)
}

// ThoughtIndex devolve o índice do pensamento visível após elapsed, em loop.
func (e Evaluator) ThoughtIndex(elapsed time.Duration) int {
	if len(e.Thoughts) == 0 || elapsed < 0 {
		return 0
	}
	return int(elapsed/ThoughtInterval) % len(e.Thoughts)
}

// Thought devolve o texto visível após elapsed.
func (e Evaluator) Thought(elapsed time.Duration) string {
	if len(e.Thoughts) == 0 {
		return ""
	}
	return e.Thoughts[e.ThoughtIndex(elapsed)]
}
