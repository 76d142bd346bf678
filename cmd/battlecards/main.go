package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"battlecards/internal/config"
	"battlecards/internal/logger"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	logger.Init()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Log.Errorf("Command failed: %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "battlecards",
		Short:         "Competitor insight feed, battle cards and digests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "Path to the JSON config file")

	rootCmd.AddCommand(
		newServeCmd(),
		newIngestCmd(),
		newDigestCmd(),
		newNotifyCmd(),
	)
	return rootCmd
}

// loadConfig читает и проверяет конфигурацию из --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
