package cluster

import (
	"fmt"
	"os"

	consul "github.com/hashicorp/consul/api"

	"mesacirurgica/internal/logging"
)

// Registration descreve o serviço anunciado no Consul.
type Registration struct {
	ServiceName string
	Port        int
	// HealthPort é onde o Consul chama /health. Zero usa Port.
	HealthPort int
	Tags       []string
}

// serviceAgent é o pedaço de consul.Agent usado aqui.
type serviceAgent interface {
	ServiceRegister(reg *consul.AgentServiceRegistration) error
	ServiceDeregister(serviceID string) error
}

func hostname() string {
	if h := os.Getenv("HOSTNAME"); h != "" {
		return h
	}
	h, _ := os.Hostname()
	return h
}

func (r Registration) serviceID(host string) string {
	return fmt.Sprintf("%s-%s", r.ServiceName, host)
}

func (r Registration) agentRegistration(host string) *consul.AgentServiceRegistration {
	healthPort := r.HealthPort
	if healthPort == 0 {
		healthPort = r.Port
	}
	return &consul.AgentServiceRegistration{
		ID:   r.serviceID(host),
		Name: r.ServiceName,
		Port: r.Port,
		Tags: r.Tags,
		// Sem Address: o agente usa o IP de quem registra.
		Check: &consul.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/health", host, healthPort),
			Timeout:                        "5s",
			Interval:                       "10s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}
}

// Register anuncia o serviço e devolve a função que o remove no desligamento.
func Register(client *consul.Client, reg Registration, log logging.Logger) (func() error, error) {
	return register(client.Agent(), reg, hostname(), log)
}

func register(agent serviceAgent, reg Registration, host string, log logging.Logger) (func() error, error) {
	r := reg.agentRegistration(host)
	if err := agent.ServiceRegister(r); err != nil {
		return nil, fmt.Errorf("failed to register %s in consul: %w", reg.ServiceName, err)
	}
	log.Info("service registered", logging.String("service", reg.ServiceName), logging.String("id", r.ID))

	return func() error {
		if err := agent.ServiceDeregister(r.ID); err != nil {
			return fmt.Errorf("failed to deregister %s: %w", r.ID, err)
		}
		log.Info("service deregistered", logging.String("id", r.ID))
		return nil
	}, nil
}
