package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "mesa-cirurgica", cfg.Service.Name)
	assert.Equal(t, 8080, cfg.Service.Port)
	assert.Equal(t, 10*time.Second, cfg.Service.ShutdownTimeout)
	assert.Equal(t, "consul-1:8500", cfg.Consul.Addr)
	assert.False(t, cfg.Consul.Register)
	assert.Equal(t, "./assets", cfg.Assets.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.NATS.URL)
	assert.Equal(t, "mesa.games", cfg.NATS.SubjectPrefix)
	assert.Equal(t, 2*time.Second, cfg.NATS.Timeout)
	assert.Equal(t, "mesa", cfg.Metrics.Namespace)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesa.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
service:
  name: mesa-teste
  port: 9090
log:
  format: console
nats:
  url: nats://localhost:4222
  timeout: 500ms
`), 0o644))

	t.Setenv("MESA_SERVICE_PORT", "9191")
	t.Setenv("MESA_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mesa-teste", cfg.Service.Name)
	assert.Equal(t, 9191, cfg.Service.Port)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, 500*time.Millisecond, cfg.NATS.Timeout)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nada.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Service.Port = 0
	cfg.Log.Format = "xml"
	cfg.Consul.Register = true
	cfg.Consul.Addr = ""

	err = cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "service.port")
	assert.ErrorContains(t, err, "log.format")
	assert.ErrorContains(t, err, "consul.addr")
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("MESA_LOG_FORMAT", "xml")
	_, err := Load("")
	assert.ErrorContains(t, err, "validation failed")
}

func TestHealthAddress(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	_, ok := cfg.HealthAddress()
	assert.False(t, ok)

	cfg.Service.HealthPort = cfg.Service.Port
	_, ok = cfg.HealthAddress()
	assert.False(t, ok)

	cfg.Service.HealthPort = 8081
	addr, ok := cfg.HealthAddress()
	assert.True(t, ok)
	assert.Equal(t, "0.0.0.0:8081", addr)
}
