package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pterodash/pterodash/internal/api"
	"github.com/pterodash/pterodash/internal/ui"
)

// serversCommand lists servers with their current power state.
func serversCommand(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newAPIClient(cfg)

	servers, err := client.ListServers(ctx)
	if err != nil {
		return err
	}
	if len(servers) == 0 {
		fmt.Println("No servers visible to this API key.")
		return nil
	}

	rows := make([][]string, 0, len(servers))
	for _, s := range servers {
		state := serverState(ctx, client, s.Identifier)
		badge := lipgloss.NewStyle().Foreground(ui.StateColor(state)).
			Render(ui.StateSymbol(state) + " " + state)
		rows = append(rows, []string{s.Identifier, s.Name, s.Node, badge})
	}

	fmt.Println(ui.RenderTable([]ui.TableColumn{
		{Title: "ID", Width: 10},
		{Title: "NAME", Width: 28},
		{Title: "NODE", Width: 16},
		{Title: "STATE", Width: 14},
	}, rows))
	return nil
}

// serverState reads the current power state, treating an unreachable
// resources endpoint as offline.
func serverState(ctx context.Context, client *api.Client, id string) string {
	snap, err := client.Resources(ctx, id)
	if err != nil {
		snap = api.OfflineSnapshot()
	}
	return string(snap.State)
}
