package cluster

import (
	"encoding/json"
	"net/http"
)

// Check é uma verificação nomeada do /health. Erro significa falha.
type Check struct {
	Name string
	Fn   func() error
}

// HealthStatus é o corpo do /health: "ok" ou a mensagem de erro por verificação.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthAggregator responde o /health que o Consul consulta. As verificações são
// fixadas na construção.
type HealthAggregator struct {
	checks []Check
}

func NewHealthAggregator(checks ...Check) *HealthAggregator {
	return &HealthAggregator{checks: checks}
}

// Status roda todas as verificações. ok é false se alguma falhar.
func (h *HealthAggregator) Status() (HealthStatus, bool) {
	st := HealthStatus{Status: "healthy", Checks: make(map[string]string, len(h.checks))}
	ok := true
	for _, c := range h.checks {
		if err := c.Fn(); err != nil {
			st.Checks[c.Name] = err.Error()
			ok = false
			continue
		}
		st.Checks[c.Name] = "ok"
	}
	if !ok {
		st.Status = "unhealthy"
	}
	return st, ok
}

// Handler responde 200 quando tudo passa e 503 caso contrário, sempre com o detalhe.
func (h *HealthAggregator) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := h.Status()
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if !ok {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(st)
	}
}

// HealthMux monta só o /health, para servir numa porta separada.
func (h *HealthAggregator) HealthMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Handler())
	return mux
}
