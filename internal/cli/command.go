package cli

import (
	"context"
	"fmt"

	"github.com/pterodash/pterodash/internal/ui"
)

// commandCommand sends a one-shot console command through the REST API.
func commandCommand(ctx context.Context, ref, command string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newAPIClient(cfg)

	server, err := resolveServer(ctx, client, ref)
	if err != nil {
		return err
	}

	if err := client.SendCommand(ctx, server.Identifier, command); err != nil {
		return err
	}
	fmt.Printf("%s Sent to %s: %s\n", ui.SymbolSuccess, server.Name, command)
	return nil
}
