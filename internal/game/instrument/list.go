package instrument

import "math/rand/v2"

// List é a lista lateral de instrumentos, na ordem em que o aluno a vê.
type List []*Instrument

// Shuffle embaralha a lista no lugar (Fisher-Yates).
func (l List) Shuffle(r *rand.Rand) {
	for i := len(l) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		l[i], l[j] = l[j], l[i]
	}
}

// IDs devolve os identificadores na ordem da lista.
func (l List) IDs() []string {
	ids := make([]string, len(l))
	for i, inst := range l {
		ids[i] = inst.ID()
	}
	return ids
}
