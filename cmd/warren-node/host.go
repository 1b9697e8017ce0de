package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cuemby/warrenchain/pkg/config"
	"github.com/cuemby/warrenchain/pkg/events"
	"github.com/cuemby/warrenchain/pkg/log"
	"github.com/cuemby/warrenchain/pkg/metrics"
	"github.com/cuemby/warrenchain/pkg/rendezvous"
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Run the TLS rendezvous peer-discovery service",
}

var hostServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the TLS rendezvous service",
	RunE:  runHostServe,
}

func init() {
	hostServeCmd.Flags().String("config", "", "Path to rendezvous YAML config (required)")
	hostServeCmd.Flags().String("metrics-addr", "", "Address to serve /metrics on (disabled if empty)")
	_ = hostServeCmd.MarkFlagRequired("config")

	hostCmd.AddCommand(hostServeCmd)
}

func runHostServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	logger := log.WithComponent("rendezvous-host")

	cfg, err := config.LoadRendezvousConfig(configPath)
	if err != nil {
		return err
	}

	tlsConfig, err := rendezvous.LoadTLSConfig(cfg.Certificate, cfg.PrivateKey)
	if err != nil {
		return err
	}

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	host := rendezvous.NewHost(broker, 0)

	if metricsAddr != "" {
		go func() {
			logger.Info().Str("addr", metricsAddr).Msg("metrics listening")
			if err := http.ListenAndServe(metricsAddr, metrics.Handler()); err != nil {
				logger.Error().Err(err).Msg("metrics server exited")
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("rendezvous host listening")
		errCh <- host.ListenAndServe(cfg.Addr(), tlsConfig)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("rendezvous host: %w", err)
		}
	}

	return host.Close()
}
