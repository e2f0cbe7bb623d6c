package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pterodash/pterodash/internal/api"
	"github.com/pterodash/pterodash/internal/config"
	"github.com/pterodash/pterodash/internal/errors"
	"github.com/pterodash/pterodash/internal/ui"
)

// initCmd creates a new .pterodash.yaml configuration.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .pterodash.yaml configuration",
	Long: `Initialize a new pterodash configuration file.

Prompts for the panel URL and client API key, verifies them against the
panel, and writes .pterodash.yaml in the current directory.

The API key can be left out of the file and provided via the
PTERODASH_API_KEY environment variable instead.

Examples:
  pterodash init
  pterodash init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(cmd.Context(), initForce)
	},
}

func initCommand(ctx context.Context, force bool) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !force {
		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	var panelURL, apiKey string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Panel URL").
				Description("The base URL of your Pterodactyl panel").
				Placeholder("https://panel.example.com").
				Value(&panelURL).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return fmt.Errorf("panel URL is required")
					}
					parsed, err := url.Parse(s)
					if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
						return fmt.Errorf("must be an http(s) URL")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Client API key").
				Description("Create one under Account Settings > API Credentials").
				Placeholder("ptlc_...").
				EchoMode(huh.EchoModePassword).
				Value(&apiKey).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("API key is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility")
	}

	cfg := config.DefaultConfig()
	cfg.Panel.URL = strings.TrimSpace(panelURL)
	cfg.Panel.APIKey = strings.TrimSpace(apiKey)

	// Verify the credentials before writing anything.
	fmt.Println()
	fmt.Printf("%s Checking panel access...\n", ui.SymbolProgress)
	client := api.NewClient(cfg.Panel.URL, cfg.Panel.APIKey, cfg.Panel.Timeout)
	servers, err := client.ListServers(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s Connected; %d server(s) visible\n", ui.SymbolSuccess, len(servers))

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to encode config", "")
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write "+configPath,
			"Check directory permissions")
	}

	fmt.Printf("%s Wrote %s\n", ui.SymbolSuccess, configPath)
	fmt.Println("Try 'pterodash servers' next.")
	return nil
}
