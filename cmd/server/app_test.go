package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesacirurgica/internal/config"
	"mesacirurgica/internal/logging"
)

func TestNewApp_Routes(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Assets.Dir = t.TempDir()

	a, err := newApp(cfg, logging.NewNop())
	require.NoError(t, err)
	defer a.close()

	cases := map[string]int{
		"/health":                        http.StatusOK,
		"/metrics":                       http.StatusOK,
		"/catalog":                       http.StatusOK,
		"/catalog/cureta":                http.StatusOK,
		"/evaluators":                    http.StatusOK,
		"/assets/instruments/cureta":     http.StatusNotFound,
		"/assets/instruments/nao-existe": http.StatusNotFound,
		"/assets/evaluators/otto":        http.StatusNotFound,
	}
	for path, want := range cases {
		w := httptest.NewRecorder()
		a.mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
}

func TestNewApp_HealthMuxServesOnlyHealth(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	a, err := newApp(cfg, logging.NewNop())
	require.NoError(t, err)
	defer a.close()

	mux := a.health.HealthMux()
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","checks":{"catalog":"ok","nats":"ok"}}`, w.Body.String())

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewApp_InvalidMetrics(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Metrics.Namespace = ""

	_, err = newApp(cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := newRootCommand()
	flag := cmd.Flags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
}
