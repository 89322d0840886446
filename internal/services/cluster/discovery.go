package cluster

import (
	"errors"
	"fmt"
	"math/rand/v2"

	consul "github.com/hashicorp/consul/api"

	"mesacirurgica/internal/logging"
)

// ErrNoHealthyService indica que o Consul não conhece nenhuma instância saudável.
var ErrNoHealthyService = errors.New("no healthy instance")

type DiscoveryMode int

const (
	ModeAnyHealthy DiscoveryMode = iota
	ModeSpecific
)

type DiscoveryOptions struct {
	Mode DiscoveryMode
	// SpecificID é o ID do serviço (ver Registration) em ModeSpecific.
	SpecificID string
}

// healthAPI é o pedaço de consul.Health usado aqui.
type healthAPI interface {
	Service(service, tag string, passingOnly bool, q *consul.QueryOptions) ([]*consul.ServiceEntry, *consul.QueryMeta, error)
}

// Discover devolve "host:porta" de uma instância saudável de serviceName.
func Discover(serviceName, consulAddrs string, opts DiscoveryOptions, log logging.Logger) (string, error) {
	client, err := NewConsulClient(consulAddrs, log)
	if err != nil {
		return "", err
	}
	return discoverWith(client.Health(), serviceName, opts)
}

func discoverWith(health healthAPI, serviceName string, opts DiscoveryOptions) (string, error) {
	services, _, err := health.Service(serviceName, "", true, nil)
	if err != nil {
		return "", fmt.Errorf("failed to query service %s: %w", serviceName, err)
	}
	if len(services) == 0 {
		return "", fmt.Errorf("%w for %s", ErrNoHealthyService, serviceName)
	}

	switch opts.Mode {
	case ModeSpecific:
		if opts.SpecificID == "" {
			return "", errors.New("ModeSpecific requires a SpecificID")
		}
		for _, s := range services {
			if s.Service.ID == opts.SpecificID {
				return address(s), nil
			}
		}
		return "", fmt.Errorf("%w: %s is not healthy for %s", ErrNoHealthyService, opts.SpecificID, serviceName)
	default:
		return address(services[rand.IntN(len(services))]), nil
	}
}

func address(s *consul.ServiceEntry) string {
	addr := s.Service.Address
	if addr == "" && s.Node != nil {
		addr = s.Node.Address
	}
	return fmt.Sprintf("%s:%d", addr, s.Service.Port)
}
