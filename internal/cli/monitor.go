package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pterodash/pterodash/internal/errors"
	"github.com/pterodash/pterodash/internal/logger"
	"github.com/pterodash/pterodash/internal/monitor"
	"github.com/pterodash/pterodash/internal/session"
)

// monitorCommand opens the live resource dashboard for one server.
func monitorCommand(ctx context.Context, ref string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newAPIClient(cfg)

	server, err := resolveServer(ctx, client, ref)
	if err != nil {
		return err
	}

	sess := session.New(session.Config{
		ServerID:    server.Identifier,
		Origin:      cfg.Origin(),
		Mode:        session.ModeMonitor,
		HistorySize: cfg.Monitor.History,
		Credentials: client,
		Logger:      logger.Default(),
	})
	defer sess.Close()

	if err := sess.Open(ctx); err != nil {
		return err
	}

	model := monitor.NewModel(server, sess, cfg.Monitor.Interval)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrCommand,
			"Dashboard session failed", "")
	}
	return nil
}
