// Package api expõe as tabelas estáticas do jogo em HTTP para a página e o terminal.
package api

import (
	"encoding/json"
	"net/http"

	"mesacirurgica/internal/assets"
	"mesacirurgica/internal/game/evaluator"
	"mesacirurgica/internal/game/instrument"
	"mesacirurgica/internal/game/layout"
	"mesacirurgica/internal/game/tutorial"
)

// DTOs do contrato HTTP.
type CatalogResponse struct {
	Instruments []*instrument.Instrument `json:"instruments"`
	Zones       []layout.Zone            `json:"zones"`
	Table       layout.Rect              `json:"table"`
	Tutorial    []tutorial.Step          `json:"tutorial"`
}

type EvaluatorDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Thoughts []string `json:"thoughts"`
	Image    string   `json:"image,omitempty"`
	// Placeholder aparece quando não há imagem.
	Placeholder string `json:"placeholder,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// CreateCatalogHandler responde com instrumentos (ordem do catálogo), zonas e tutorial.
func CreateCatalogHandler(catalog *instrument.Catalog) http.HandlerFunc {
	body := CatalogResponse{
		Instruments: catalog.All(),
		Zones:       layout.Zones(),
		Table:       layout.Rect{W: layout.TableW, H: layout.TableH},
		Tutorial:    tutorial.Steps(),
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, body)
	}
}

// CreateInstrumentHandler responde com um instrumento por id.
func CreateInstrumentHandler(catalog *instrument.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inst, err := catalog.Get(r.PathValue("id"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, inst)
	}
}

// CreateEvaluatorsHandler lista os avaliadores da tela de escolha, com a imagem resolvida.
func CreateEvaluatorsHandler(resolver *assets.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := evaluator.All()
		out := make([]EvaluatorDTO, len(all))
		for i, ev := range all {
			dto := EvaluatorDTO{ID: ev.ID, Name: ev.Name, Thoughts: ev.Thoughts}
			if img, ok := resolver.Evaluator(ev.ID); ok {
				dto.Image = img
			} else {
				dto.Placeholder = assets.Placeholder
			}
			out[i] = dto
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// Register monta as rotas de leitura no mux.
func Register(mux *http.ServeMux, catalog *instrument.Catalog, resolver *assets.Resolver) {
	mux.HandleFunc("GET /catalog", CreateCatalogHandler(catalog))
	mux.HandleFunc("GET /catalog/{id}", CreateInstrumentHandler(catalog))
	mux.HandleFunc("GET /evaluators", CreateEvaluatorsHandler(resolver))
}
