// Package config carrega a configuração do servidor: arquivo YAML opcional,
// sobrescrito por variáveis MESA_*.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"mesacirurgica/internal/logging"
	"mesacirurgica/internal/metrics"
	"mesacirurgica/internal/services/audit"
)

const envPrefix = "MESA"

const (
	defaultServiceName = "mesa-cirurgica"
	defaultServicePort = 8080
	defaultConsulAddr  = "consul-1:8500"
	defaultAssetsDir   = "./assets"
)

// Config armazena todas as configurações da aplicação.
type Config struct {
	Service ServiceConfig  `mapstructure:"service"`
	Consul  ConsulConfig   `mapstructure:"consul"`
	Assets  AssetsConfig   `mapstructure:"assets"`
	Log     logging.Config `mapstructure:"log"`
	NATS    audit.Config   `mapstructure:"nats"`
	Metrics metrics.Config `mapstructure:"metrics"`
}

type ServiceConfig struct {
	Name string `mapstructure:"name"`
	Port int    `mapstructure:"port"`
	// HealthPort zero usa Port.
	HealthPort      int           `mapstructure:"health_port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type ConsulConfig struct {
	// Addr aceita lista separada por vírgula. Vazio desliga o registro.
	Addr     string `mapstructure:"addr"`
	Register bool   `mapstructure:"register"`
}

type AssetsConfig struct {
	Dir string `mapstructure:"dir"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults também declara as chaves, senão AutomaticEnv não as enxerga no Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("service.name", defaultServiceName)
	v.SetDefault("service.port", defaultServicePort)
	v.SetDefault("service.health_port", 0)
	v.SetDefault("service.shutdown_timeout", 10*time.Second)

	v.SetDefault("consul.addr", defaultConsulAddr)
	v.SetDefault("consul.register", false)

	v.SetDefault("assets.dir", defaultAssetsDir)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject_prefix", "mesa.games")
	v.SetDefault("nats.timeout", 2*time.Second)

	v.SetDefault("metrics.namespace", "mesa")
	v.SetDefault("metrics.enable_runtime", true)
}

// Load lê o arquivo em path (se não vazio), aplica MESA_* e valida.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Validate rejeita valores que impedem a subida do servidor.
func (c *Config) Validate() error {
	var errs []error
	if c.Service.Name == "" {
		errs = append(errs, errors.New("service.name is required"))
	}
	if c.Service.Port <= 0 || c.Service.Port > 65535 {
		errs = append(errs, fmt.Errorf("service.port out of range: %d", c.Service.Port))
	}
	if c.Service.HealthPort < 0 || c.Service.HealthPort > 65535 {
		errs = append(errs, fmt.Errorf("service.health_port out of range: %d", c.Service.HealthPort))
	}
	if c.Consul.Register && c.Consul.Addr == "" {
		errs = append(errs, errors.New("consul.addr is required when consul.register is set"))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}
	if c.NATS.Timeout < 0 {
		errs = append(errs, errors.New("nats.timeout must not be negative"))
	}
	return errors.Join(errs...)
}

// Address é o endereço de escuta do servidor HTTP.
func (c *Config) Address() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Service.Port)
}

// HealthAddress é o endereço do /health separado, quando service.health_port
// difere da porta principal.
func (c *Config) HealthAddress() (string, bool) {
	if c.Service.HealthPort == 0 || c.Service.HealthPort == c.Service.Port {
		return "", false
	}
	return fmt.Sprintf("0.0.0.0:%d", c.Service.HealthPort), true
}
