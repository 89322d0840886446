package main

import (
	"errors"
	"net/http"
	"os"

	"mesacirurgica/internal/api"
	"mesacirurgica/internal/assets"
	"mesacirurgica/internal/config"
	"mesacirurgica/internal/game/instrument"
	"mesacirurgica/internal/logging"
	"mesacirurgica/internal/metrics"
	"mesacirurgica/internal/network"
	"mesacirurgica/internal/services/audit"
	"mesacirurgica/internal/services/cluster"
	"mesacirurgica/internal/session"
)

// app liga as peças do servidor. O Hub ainda precisa de server.Run.
type app struct {
	mux       *http.ServeMux
	health    *cluster.HealthAggregator
	server    *network.Server
	publisher audit.Publisher
	log       logging.Logger
}

func newApp(cfg *config.Config, logger logging.Logger) (*app, error) {
	catalog, err := instrument.Load()
	if err != nil {
		return nil, err
	}
	logger.Named("main").Info("catalog loaded", logging.Int("instruments", catalog.Len()))

	gameMetrics, err := metrics.New(cfg.Metrics)
	if err != nil {
		return nil, err
	}

	publisher, err := audit.Connect(cfg.NATS, logger.Named("audit"))
	if err != nil {
		return nil, err
	}

	handler := session.NewGameHandler(session.Options{
		Catalog:   catalog,
		Logger:    logger.Named("session"),
		Recorder:  gameMetrics,
		Publisher: publisher,
	})
	server := network.NewServer(handler, logger.Named("network"))

	health := cluster.NewHealthAggregator(
		cluster.Check{Name: "catalog", Fn: func() error {
			if catalog.Len() == 0 {
				return errors.New("catalog is empty")
			}
			return nil
		}},
		cluster.Check{Name: "nats", Fn: publisher.Healthy},
	)

	fsys := os.DirFS(cfg.Assets.Dir)
	files := assets.NewHandler(fsys, catalog)

	mux := http.NewServeMux()
	server.Register(mux)
	mux.HandleFunc("GET /health", health.Handler())
	mux.Handle("GET /metrics", gameMetrics.Handler())
	api.Register(mux, catalog, files.Resolver())
	files.Register(mux)

	return &app{mux: mux, health: health, server: server, publisher: publisher, log: logger}, nil
}

func (a *app) close() {
	if err := a.publisher.Close(); err != nil {
		a.log.Warn("publisher close failed", logging.Err(err))
	}
}
