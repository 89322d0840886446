package assets

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesacirurgica/internal/game/instrument"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"instruments/Lamina 10.jpg":  {Data: []byte("jpg")},
		"instruments/Lamina 10.webp": {Data: []byte("webp")},
		"instruments/Cureta.png":     {Data: []byte("png")},
		"evaluators/otto.jpg":        {Data: []byte("otto")},
	}
}

func TestCandidates_OrderAndEscaping(t *testing.T) {
	assert.Equal(t, []string{
		"/instruments/Lamina%2010.png",
		"/instruments/Lamina%2010.jpg",
		"/instruments/Lamina%2010.jpeg",
		"/instruments/Lamina%2010.webp",
	}, InstrumentCandidates("Lamina 10"))
	assert.Equal(t, []string{"/evaluators/rafael.png", "/evaluators/rafael.jpg"}, EvaluatorCandidates("rafael"))
}

func TestResolver_FirstExistingWins(t *testing.T) {
	r := NewResolver(testFS())

	path, ok := r.Instrument("Lamina 10")
	require.True(t, ok)
	assert.Equal(t, "/instruments/Lamina%2010.jpg", path)

	path, ok = r.Evaluator("otto")
	require.True(t, ok)
	assert.Equal(t, "/evaluators/otto.jpg", path)

	_, ok = r.Instrument("Tesoura Mayo Reta")
	assert.False(t, ok)
	_, ok = r.Instrument("")
	assert.False(t, ok)
	_, ok = NewResolver(nil).Evaluator("otto")
	assert.False(t, ok)
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	h.Register(mux)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandler(t *testing.T) {
	h := NewHandler(testFS(), instrument.MustLoad())

	w := serve(h, "/assets/instruments/cureta")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/instruments/Cureta.png", w.Header().Get("Location"))

	w = serve(h, "/assets/instruments/tesoura-mayo-reta")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"placeholder":"sem imagem","glyph":"scalpel"}`, w.Body.String())

	w = serve(h, "/assets/instruments/nao-existe")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(h, "/assets/evaluators/rafael")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"placeholder":"sem imagem"}`, w.Body.String())

	w = serve(h, "/instruments/Cureta.png")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())
}
