package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/emi-calculator/internal/server"
	"github.com/iwvelando/emi-calculator/pkg/constants"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var (
		serverConfigPath string
		address          string
		maxBodySize      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the EMI calculator over HTTP",
		Long: `Start an HTTP server exposing GET/POST /api/emi and GET /api/version.

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if err := applyServeOverrides(cfg, address, maxBodySize); err != nil {
				return err
			}

			logLevel, _ := cmd.Flags().GetString("log-level")
			logger, err := initializeLogger(cfg.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Serve(ctx, logger, cfg, Version)
		},
	}

	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override (e.g. :8080)")
	cmd.Flags().StringVar(&maxBodySize, "max-body-size", "", "request body limit override (e.g. 16KB, 1MB)")

	return cmd
}

func applyServeOverrides(cfg *server.Config, address, maxBodySize string) error {
	if address != "" {
		cfg.Address = address
	}
	if maxBodySize != "" {
		size, err := server.ParseSize(maxBodySize)
		if err != nil {
			return fmt.Errorf("invalid --max-body-size: %w", err)
		}
		cfg.SetBodyBytes(size)
	}
	return nil
}
