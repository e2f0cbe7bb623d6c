package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/pterodash/pterodash/internal/api"
	"github.com/pterodash/pterodash/internal/errors"
	"github.com/pterodash/pterodash/internal/logger"
	"github.com/pterodash/pterodash/internal/power"
	"github.com/pterodash/pterodash/internal/ui"
)

// powerCommand sends a power signal and reports the state transition.
func powerCommand(ctx context.Context, ref string, signal api.PowerSignal, yes bool) error {
	if !signal.Valid() {
		return errors.New(errors.ErrCommand,
			fmt.Sprintf("Unknown power signal: %s", signal),
			"Use start, stop, restart, or kill")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newAPIClient(cfg)

	server, err := resolveServer(ctx, client, ref)
	if err != nil {
		return err
	}

	confirmed := yes
	if signal.Destructive() && !confirmed {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Send '%s' to %s?", signal, server.Name)).
					Description("The server process will be stopped.").
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrCommand,
				"Failed to get confirmation",
				"Re-run with --yes to skip the prompt")
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	orch := power.New(client, logger.Default())

	probeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tracker := newTransitionTracker(signal)
	refresh := func(ctx context.Context) {
		state := serverState(ctx, client, server.Identifier)
		if !tracker.observe(state) {
			return
		}
		badge := lipgloss.NewStyle().Foreground(ui.StateColor(state)).
			Render(ui.StateSymbol(state) + " " + state)
		fmt.Printf("  %s\n", badge)
	}

	if err := orch.RequestTransition(probeCtx, server.Identifier, signal, confirmed, refresh); err != nil {
		return err
	}
	fmt.Printf("%s Sent '%s' to %s\n", ui.SymbolSuccess, signal, server.Name)

	// Keep the process alive through the probe window so the transition
	// is reported; bail early once the target state is reached.
	select {
	case <-tracker.settled:
	case <-time.After(power.ProbeWindow + 2*time.Second):
		fmt.Println("  still settling; check 'pterodash servers' for the final state")
	case <-probeCtx.Done():
	}
	return nil
}

// transitionTracker decides when a power transition has settled. Probes run
// sequentially, so no locking is needed. A restart must be seen leaving the
// running state first; the early probes can still read 'running' before the
// daemon begins the stop phase, and that reading must not count as settled.
type transitionTracker struct {
	target   string
	awaitDip bool
	last     string
	done     bool
	settled  chan struct{}
}

func newTransitionTracker(signal api.PowerSignal) *transitionTracker {
	return &transitionTracker{
		target:   expectedState(signal),
		awaitDip: signal == api.SignalRestart,
		settled:  make(chan struct{}),
	}
}

// observe folds one state reading and reports whether it is a new state that
// should be displayed. settled is closed at most once, on the first target
// reading after any required dip.
func (t *transitionTracker) observe(state string) bool {
	if state != t.target {
		t.awaitDip = false
	}
	changed := state != t.last
	t.last = state
	if state == t.target && !t.awaitDip && !t.done {
		t.done = true
		close(t.settled)
	}
	return changed
}

func expectedState(signal api.PowerSignal) string {
	switch signal {
	case api.SignalStart, api.SignalRestart:
		return string(api.StateRunning)
	default:
		return string(api.StateOffline)
	}
}
