package assets

import (
	"encoding/json"
	"io/fs"
	"net/http"

	"mesacirurgica/internal/game/evaluator"
	"mesacirurgica/internal/game/instrument"
)

type missingResponse struct {
	Placeholder string           `json:"placeholder"`
	Glyph       instrument.Glyph `json:"glyph,omitempty"`
}

// Handler redireciona /assets/... para o arquivo resolvido e serve os arquivos
// de /instruments/ e /evaluators/.
type Handler struct {
	resolver *Resolver
	catalog  *instrument.Catalog
	files    http.Handler
}

func NewHandler(fsys fs.FS, catalog *instrument.Catalog) *Handler {
	return &Handler{
		resolver: NewResolver(fsys),
		catalog:  catalog,
		files:    http.FileServerFS(fsys),
	}
}

func (h *Handler) Resolver() *Resolver { return h.resolver }

// Register monta as rotas no mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /assets/instruments/{id}", h.instrument)
	mux.HandleFunc("GET /assets/evaluators/{id}", h.evaluator)
	mux.Handle("GET /instruments/", h.files)
	mux.Handle("GET /evaluators/", h.files)
}

func (h *Handler) instrument(w http.ResponseWriter, r *http.Request) {
	inst, err := h.catalog.Get(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if path, ok := h.resolver.Instrument(inst.Visual().ImageBase); ok {
		http.Redirect(w, r, path, http.StatusFound)
		return
	}
	writeMissing(w, missingResponse{Placeholder: Placeholder, Glyph: inst.Visual().Glyph})
}

func (h *Handler) evaluator(w http.ResponseWriter, r *http.Request) {
	ev, ok := evaluator.Lookup(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	if path, ok := h.resolver.Evaluator(ev.ID); ok {
		http.Redirect(w, r, path, http.StatusFound)
		return
	}
	writeMissing(w, missingResponse{Placeholder: Placeholder})
}

func writeMissing(w http.ResponseWriter, body missingResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(body)
}
