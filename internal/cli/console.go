package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pterodash/pterodash/internal/console"
	"github.com/pterodash/pterodash/internal/errors"
	"github.com/pterodash/pterodash/internal/logexport"
	"github.com/pterodash/pterodash/internal/logger"
	"github.com/pterodash/pterodash/internal/session"
)

// consoleCommand attaches an interactive console to one server.
func consoleCommand(ctx context.Context, ref string) error {
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
		Mode:        session.ModeConsole,
		HistorySize: cfg.Monitor.History,
		Credentials: client,
		Logger:      logger.Default(),
	})
	defer sess.Close()

	if err := sess.Open(ctx); err != nil {
		return err
	}

	uploader := logexport.NewClient(cfg.Upload.URL, cfg.Panel.Timeout,
		logexport.WithLogger(logger.Default()))

	model := console.NewModel(server, sess, uploader)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrCommand,
			"Console session failed", "")
	}
	return nil
}
