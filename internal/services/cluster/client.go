package cluster

import (
	"fmt"
	"strings"

	consul "github.com/hashicorp/consul/api"

	"mesacirurgica/internal/logging"
)

// NewConsulClient tenta cada endereço da lista (separada por vírgulas) até achar
// um agente que responda com um líder.
func NewConsulClient(addrs string, log logging.Logger) (*consul.Client, error) {
	for _, node := range strings.Split(addrs, ",") {
		node = strings.TrimSpace(node)
		if node == "" {
			continue
		}
		cfg := consul.DefaultConfig()
		cfg.Address = node

		client, err := consul.NewClient(cfg)
		if err != nil {
			log.Warn("consul client failed", logging.String("node", node), logging.Err(err))
			continue
		}
		if _, err := client.Status().Leader(); err != nil {
			log.Warn("consul node did not answer", logging.String("node", node), logging.Err(err))
			continue
		}

		log.Info("connected to consul", logging.String("node", node))
		return client, nil
	}
	return nil, fmt.Errorf("no consul node available in %q", addrs)
}
