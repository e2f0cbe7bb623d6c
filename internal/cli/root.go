// Package cli wires the command tree: config loading, the REST client, and
// the interactive console and monitor programs.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pterodash/pterodash/internal/api"
	"github.com/pterodash/pterodash/internal/config"
	"github.com/pterodash/pterodash/internal/logger"
)

// Persistent flags
var (
	configFlag  string
	verboseFlag bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "pterodash",
	Short: "Terminal dashboard for Pterodactyl game servers",
	Long: `pterodash is a terminal client for Pterodactyl game server panels.

It talks to the panel's client API and each server's daemon websocket to
provide a live console, a realtime resource dashboard, and power controls
without leaving the terminal.

Configuration lives in .pterodash.yaml (run 'pterodash init' to create one).
The API key can also be provided via the PTERODASH_API_KEY environment
variable.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			_ = os.Setenv(logger.DebugEnvVar, "1")
		}
	},
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
}

// loadConfig finds, loads, and validates the configuration.
func loadConfig() (*config.Config, error) {
	path, err := config.Find(configFlag)
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	if path == "" {
		cfg, err = config.LoadOrDefault()
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newAPIClient builds the panel client from config.
func newAPIClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.Panel.URL, cfg.Panel.APIKey, cfg.Panel.Timeout,
		api.WithLogger(logger.Default()))
}
