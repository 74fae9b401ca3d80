package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atsworker/internal/config"
	"github.com/muhammadolammi/atsworker/internal/logger"
)

var (
	flagDebug bool
	flagJSON  bool
)

var rootCmd = &cobra.Command{
	Use:           "atsworker",
	Short:         "Score resumes against jobs and route candidates",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "log in JSON")
	rootCmd.AddCommand(workerCmd(), serveCmd(), scoreCmd(), statsCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger. Flags override the
// environment.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if flagDebug {
		cfg.Debug = true
	}
	if flagJSON {
		cfg.LogJSON = true
	}
	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	return cfg, log, nil
}
