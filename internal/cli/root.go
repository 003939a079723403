package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/vertexdash/internal/config"
	"github.com/me/vertexdash/internal/logging"
)

var (
	flagConfig    string
	flagBackend   string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	cfg    config.DashboardConfig
	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the vertexdash CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vertexdash",
		Short: "Vertex: products and sales dashboard",
		Long:  "vertexdash serves the products and sales dashboard and queries the sales backend from the terminal.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(flagConfig)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") || cfg.LogLevel == "" {
				cfg.LogLevel = flagLogLevel
			}
			if cmd.Flags().Changed("log-format") || cfg.LogFormat == "" {
				cfg.LogFormat = flagLogFormat
			}
			if flagDebug {
				cfg.LogLevel = "debug"
			}
			if flagBackend != "" {
				cfg.Backend.URL = flagBackend
			}
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, os.Stderr)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (or VERTEXDASH_CONFIG env)")
	root.PersistentFlags().StringVar(&flagBackend, "backend", "", "Sales backend URL (or VERTEXDASH_BACKEND_URL env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newServeCmd(),
		newProductsCmd(),
		newReportCmd(),
	)

	return root
}
