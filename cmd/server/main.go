// Comando mesa-server: servidor WebSocket da Mesa Cirúrgica.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mesacirurgica/internal/config"
	"mesacirurgica/internal/logging"
	"mesacirurgica/internal/services/cluster"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:           "mesa-server",
		Short:         "Servidor da Mesa Cirúrgica",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "arquivo YAML de configuração (opcional)")
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Named("main")
	log.Info("config loaded",
		logging.String("service", cfg.Service.Name),
		logging.Int("port", cfg.Service.Port),
		logging.String("consul", cfg.Consul.Addr),
		logging.Bool("register", cfg.Consul.Register))

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	go a.server.Run(ctx)

	if cfg.Consul.Register {
		client, err := cluster.NewConsulClient(cfg.Consul.Addr, logger.Named("cluster"))
		if err != nil {
			return err
		}
		deregister, err := cluster.Register(client, cluster.Registration{
			ServiceName: cfg.Service.Name,
			Port:        cfg.Service.Port,
			HealthPort:  cfg.Service.HealthPort,
			Tags:        []string{"websocket", "mesa"},
		}, logger.Named("cluster"))
		if err != nil {
			return err
		}
		defer func() {
			if err := deregister(); err != nil {
				log.Warn("consul deregistration failed", logging.Err(err))
			}
		}()
	}

	servers := []*http.Server{{Addr: cfg.Address(), Handler: a.mux}}
	if addr, ok := cfg.HealthAddress(); ok {
		servers = append(servers, &http.Server{Addr: addr, Handler: a.health.HealthMux()})
	}
	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func() {
			log.Info("http server listening", logging.String("addr", srv.Addr))
			errCh <- srv.ListenAndServe()
		}()
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Service.ShutdownTimeout)
	defer cancel()
	var errs []error
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown %s: %w", srv.Addr, err))
		}
	}
	return errors.Join(errs...)
}
