package clock

import "time"

// Clock permite injetar o tempo nas regras do jogo (cronômetro, balão do avaliador, relatório).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem retorna um relógio baseado em time.Now.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// Manual é um relógio controlado à mão, usado nos testes para simular a passagem do tempo.
type Manual struct {
	now time.Time
}

// NewManual cria um relógio parado em t.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t.UTC()}
}

func (m *Manual) Now() time.Time {
	return m.now
}

// Advance avança o relógio em d.
func (m *Manual) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}
