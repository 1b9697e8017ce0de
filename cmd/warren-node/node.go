package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cuemby/warrenchain/pkg/api"
	"github.com/cuemby/warrenchain/pkg/chainnode"
	"github.com/cuemby/warrenchain/pkg/config"
	"github.com/cuemby/warrenchain/pkg/dispatcher"
	"github.com/cuemby/warrenchain/pkg/events"
	"github.com/cuemby/warrenchain/pkg/log"
	"github.com/cuemby/warrenchain/pkg/mempool"
	"github.com/cuemby/warrenchain/pkg/metrics"
	"github.com/cuemby/warrenchain/pkg/rendezvous"
	"github.com/cuemby/warrenchain/pkg/storage"
	"github.com/cuemby/warrenchain/pkg/types"
)

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Run a chain node",
}

var nodeServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the node server loop",
	RunE:  runNodeServe,
}

func init() {
	nodeServeCmd.Flags().String("config", "", "Path to node YAML config (required)")
	nodeServeCmd.Flags().Duration("mine-interval", 2*time.Second, "How often to drain the mempool and mine a block")
	_ = nodeServeCmd.MarkFlagRequired("config")

	nodeCmd.AddCommand(nodeServeCmd)
}

func runNodeServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	mineInterval, _ := cmd.Flags().GetDuration("mine-interval")

	logger := log.WithComponent("node")

	cfg, err := config.LoadNodeConfig(configPath)
	if err != nil {
		log.Errorf("node: failed to load config "+configPath, err)
		return err
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = storage.DefaultDBFileName
	}
	store, err := storage.CreateOrOpen(dbPath)
	if err != nil {
		return fmt.Errorf("node: open storage: %w", err)
	}
	defer store.Close()

	mp := mempool.New(cfg.MempoolCapacity)
	metrics.MempoolCapacity.Set(float64(cfg.MempoolCapacity))

	node, err := chainnode.Resume(store, mp, cfg.MaxMempoolDrain, [types.ExtraDataLen]byte{})
	if err != nil {
		return fmt.Errorf("node: resume chain: %w", err)
	}

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()
	node.SetBroker(broker)

	collector := metrics.NewCollector(node)
	collector.Start()
	defer collector.Stop()

	svc := dispatcher.Build(node, dispatcher.Config{}, logger)

	health := api.NewHealthServer(node)
	go func() {
		logger.Info().Str("addr", cfg.MetricsAddr).Msg("health/metrics listening")
		if err := health.Start(cfg.MetricsAddr); err != nil {
			logger.Error().Err(err).Msg("health server exited")
		}
	}()

	if cfg.Host != "" && cfg.P2PServerAddr != "" {
		client := rendezvous.NewClient(cfg.P2PServerAddr, cfg.TrustAllCerts, broker)
		go func() {
			logger.Info().Str("rendezvous", cfg.Addr()).Msg("connecting to rendezvous host")
			if err := client.Connect(cfg.Addr()); err != nil {
				logger.Error().Err(err).Msg("rendezvous client exited")
			}
		}()
	} else {
		log.Warn("rendezvous not configured, running as a standalone node")
	}

	stopMining := make(chan struct{})
	go runMiningLoop(logger, svc, mineInterval, stopMining)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info().Msg("shutting down")
	close(stopMining)
	return nil
}

func runMiningLoop(logger zerolog.Logger, svc dispatcher.Service[dispatcher.Command, dispatcher.Response], interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var tick uint64
	for {
		select {
		case <-ticker.C:
			tick++
			taskLog := log.WithTaskID(fmt.Sprintf("mine-tick-%d", tick))
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			if _, err := svc.Call(ctx, dispatcher.MineBlock{}); err != nil {
				taskLog.Debug().Err(err).Msg("mine_block tick skipped")
			}
			cancel()
		case <-stop:
			logger.Debug().Uint64("ticks", tick).Msg("mining loop stopped")
			return
		}
	}
}
