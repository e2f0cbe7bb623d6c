package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pterodash/pterodash/internal/api"
	"github.com/pterodash/pterodash/internal/errors"
)

// Command-specific flags
var (
	powerYesFlag bool
	initForce    bool
)

// serversCmd lists the servers visible to the API key.
var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "List servers visible to your API key",
	Long: `List all game servers your API key can manage, with their current
power state.

Examples:
  pterodash servers`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serversCommand(cmd.Context())
	},
}

// consoleCmd opens the interactive console for a server.
var consoleCmd = &cobra.Command{
	Use:   "console <server>",
	Short: "Open the live server console",
	Long: `Attach to a server's console over the daemon websocket.

Streams console output in real time, accepts commands, and can upload the
visible log to mclo.gs for sharing.

Keyboard shortcuts:
  Enter       Send the typed command
  Ctrl+U      Upload the console log, print the share URL
  PgUp/PgDn   Scroll the backlog
  Ctrl+C      Quit

Examples:
  pterodash console a1b2c3d4
  pterodash console survival`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return consoleCommand(cmd.Context(), args[0])
	},
}

// monitorCmd opens the live resource dashboard for a server.
var monitorCmd = &cobra.Command{
	Use:   "monitor <server>",
	Short: "Real-time resource dashboard for a server",
	Long: `Start an interactive dashboard showing live CPU, memory, disk, and
network metrics for one server, streamed from the daemon websocket.

Keyboard shortcuts:
  q / Esc / Ctrl+C  Quit

Examples:
  pterodash monitor a1b2c3d4
  pterodash monitor survival`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(cmd.Context(), args[0])
	},
}

// powerCmd sends a power signal to a server.
var powerCmd = &cobra.Command{
	Use:   "power <server> <start|stop|restart|kill>",
	Short: "Send a power signal to a server",
	Long: `Send a power signal and watch the state transition.

stop and kill prompt for confirmation unless --yes is given. After the
signal is accepted, the server state is polled for up to 30 seconds so you
can see the transition complete.

Examples:
  pterodash power survival restart
  pterodash power survival stop --yes`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return powerCommand(cmd.Context(), args[0], api.PowerSignal(args[1]), powerYesFlag)
	},
}

// commandCmd delivers a one-shot console command over REST.
var commandCmd = &cobra.Command{
	Use:   "command <server> -- <command...>",
	Short: "Send a console command without opening the console",
	Long: `Deliver a single console command through the panel's REST API.

No websocket session is opened; output is not echoed back. Use
'pterodash console' to watch the response.

Examples:
  pterodash command survival -- say Server restarting in 5 minutes
  pterodash command survival -- whitelist add steve`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return commandCommand(cmd.Context(), args[0], strings.Join(args[1:], " "))
	},
}

// completionCmd generates shell completion scripts.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for pterodash.

Examples:
  # Bash
  pterodash completion bash > /etc/bash_completion.d/pterodash

  # Zsh
  pterodash completion zsh > "${fpath[1]}/_pterodash"

  # Fish
  pterodash completion fish > ~/.config/fish/completions/pterodash.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrCommand,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	powerCmd.Flags().BoolVarP(&powerYesFlag, "yes", "y", false, "skip confirmation for stop and kill")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")

	rootCmd.AddCommand(serversCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(powerCmd)
	rootCmd.AddCommand(commandCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}

// resolveServer accepts either a server identifier or a (unique) name and
// returns the matching server.
func resolveServer(ctx context.Context, client *api.Client, ref string) (api.Server, error) {
	servers, err := client.ListServers(ctx)
	if err != nil {
		return api.Server{}, err
	}

	for _, s := range servers {
		if s.Identifier == ref {
			return s, nil
		}
	}

	var match *api.Server
	for i, s := range servers {
		if strings.EqualFold(s.Name, ref) {
			if match != nil {
				return api.Server{}, errors.New(errors.ErrAPI,
					fmt.Sprintf("Multiple servers named %q", ref),
					"Use the server identifier instead; run 'pterodash servers' to list them")
			}
			match = &servers[i]
		}
	}
	if match != nil {
		return *match, nil
	}

	return api.Server{}, errors.New(errors.ErrAPI,
		fmt.Sprintf("No server matching %q", ref),
		"Run 'pterodash servers' to list available servers")
}
