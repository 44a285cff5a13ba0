package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/helix/internal/config"
	logpkg "github.com/kailas-cloud/helix/internal/logger"
	"github.com/kailas-cloud/helix/internal/version"
)

var envName string

var rootCmd = &cobra.Command{
	Use:   "helix",
	Short: "HELiiX Big 12 directory listings",
	Long: `helix serves the Big 12 directory listings (schools, venues, contacts,
travel routes, weather stations, awards) with free-text search, facet and
range filters, sorting and "N of M" counts.

Without a subcommand helix starts the HTTP API.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "Config environment: local, dev, prod (default: $ENV or local)")

	rootCmd.AddCommand(serveCmd, seedCmd, queryCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the config and logger for the selected environment.
func setup() (string, config.Config, *zap.Logger, error) {
	env := envName
	if env == "" {
		env = config.GetEnv()
	}

	cfg, err := config.Load(env)
	if err != nil {
		return "", config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return "", config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return env, cfg, logger, nil
}
