// Package tutorial é o passo a passo mostrado antes de liberar o arraste.
package tutorial

// Target é o elemento da tela destacado pelo passo.
type Target string

const (
	TargetList  Target = "list"
	TargetZones Target = "zones"
	TargetCheck Target = "check"
)

type Step struct {
	Target Target `json:"target"`
	Text   string `json:"text"`
}

var steps = []Step{
	{Target: TargetList, Text: "Selecione os instrumentos adequados na lista ao lado."},
	{Target: TargetZones, Text: "Arraste com mouse e coloque os instrumentos em cada tempo cirúrgico."},
	{Target: TargetCheck, Text: "Após finalizar toda a montagem, clique em “Checar” para avaliar seu desempenho."},
}

// Steps devolve uma cópia dos passos.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// Stepper guarda o passo atual e se o tutorial ainda está visível.
type Stepper struct {
	index  int
	active bool
}

// NewStepper começa no primeiro passo, visível.
func NewStepper() *Stepper {
	return &Stepper{active: true}
}

func (s *Stepper) Active() bool { return s.active }
func (s *Stepper) Index() int   { return s.index }
func (s *Stepper) Total() int   { return len(steps) }

// Current devolve o passo visível.
func (s *Stepper) Current() (Step, bool) {
	if !s.active {
		return Step{}, false
	}
	return steps[s.index], true
}

// Next avança; no último passo encerra o tutorial. Devolve se o tutorial terminou.
func (s *Stepper) Next() bool {
	if !s.active {
		return true
	}
	if s.index < len(steps)-1 {
		s.index++
		return false
	}
	s.active = false
	return true
}

// Skip encerra o tutorial de qualquer passo.
func (s *Stepper) Skip() {
	s.active = false
}

// Restart volta ao primeiro passo.
func (s *Stepper) Restart() {
	s.index = 0
	s.active = true
}
