package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesacirurgica/internal/assets"
	"mesacirurgica/internal/game/instrument"
)

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	fsys := fstest.MapFS{"evaluators/rafael.png": {Data: []byte("x")}}
	Register(mux, instrument.MustLoad(), assets.NewResolver(fsys))
	return mux
}

func get(t *testing.T, mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestCatalogHandler(t *testing.T) {
	w := get(t, newMux(), "/catalog")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Instruments []map[string]any `json:"instruments"`
		Zones       []map[string]any `json:"zones"`
		Table       map[string]float64
		Tutorial    []map[string]string
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Instruments, 44)
	assert.Equal(t, "pinca-dente-de-rato", body.Instruments[0]["id"])
	assert.Len(t, body.Zones, 6)
	assert.Equal(t, 1000.0, body.Table["w"])
	assert.Len(t, body.Tutorial, 3)
}

func TestInstrumentHandler(t *testing.T) {
	mux := newMux()
	w := get(t, mux, "/catalog/lamina-10")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"label":"Lâmina 10"`)

	w = get(t, mux, "/catalog/nada")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "instrument not found")
}

func TestEvaluatorsHandler(t *testing.T) {
	w := get(t, newMux(), "/evaluators")
	require.Equal(t, http.StatusOK, w.Code)

	var out []EvaluatorDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "otto", out[0].ID)
	assert.Empty(t, out[0].Image)
	assert.Equal(t, assets.Placeholder, out[0].Placeholder)
	assert.Equal(t, "/evaluators/rafael.png", out[1].Image)
}
