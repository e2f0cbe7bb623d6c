// Package monitor implements the live resource dashboard for one server,
// fed by the realtime session's event stream.
package monitor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pterodash/pterodash/internal/api"
	"github.com/pterodash/pterodash/internal/session"
)

// LayoutMode is the responsive layout tier for the current terminal size.
type LayoutMode int

const (
	// LayoutMinimal is for terminals < 80 columns: readouts only, no graphs.
	LayoutMinimal LayoutMode = iota
	// LayoutCompact is for terminals 80-120 columns: short sparklines.
	LayoutCompact
	// LayoutStandard is for terminals 120+ columns: full-width graphs.
	LayoutStandard
)

// Width breakpoints for layout modes.
const (
	BreakpointCompact  = 80
	BreakpointStandard = 120
)

// HeightMinimal is the minimum height at which the footer is shown.
const HeightMinimal = 14

// spinnerInterval is the animation frame rate while connecting.
const spinnerInterval = 150 * time.Millisecond

// sessionEventMsg wraps one event from the session stream.
type sessionEventMsg session.Event

// spinnerTickMsg advances the connecting spinner animation.
type spinnerTickMsg time.Time

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	server  api.Server
	sess    *session.Session
	events  <-chan session.Event
	refresh time.Duration

	state      session.State
	power      api.PowerState
	stats      api.StatsSnapshot
	haveStats  bool
	lastUpdate time.Time
	errMsg     string
	ended      bool

	width        int
	height       int
	spinnerFrame int
	quitting     bool
}

// NewModel creates a dashboard model around an opened session. refresh is
// the daemon's stats push cadence, used to scale network deltas into
// per-second rates.
func NewModel(server api.Server, sess *session.Session, refresh time.Duration) Model {
	if refresh <= 0 {
		refresh = time.Second
	}
	return Model{
		server:  server,
		sess:    sess,
		events:  sess.Events(),
		refresh: refresh,
		state:   sess.State(),
	}
}

// Init starts event polling and the spinner animation.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitEventCmd(), m.spinnerTickCmd())
}

// Update handles messages and advances the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinnerTickMsg:
		if m.quitting {
			return m, nil
		}
		m.spinnerFrame = (m.spinnerFrame + 1) % 10000
		return m, m.spinnerTickCmd()

	case sessionEventMsg:
		m.applyEvent(session.Event(msg))
		if m.ended {
			return m, nil
		}
		return m, m.waitEventCmd()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// applyEvent folds one session event into the display state.
func (m *Model) applyEvent(ev session.Event) {
	switch ev.Kind {
	case session.EventStateChange:
		m.state = ev.State

	case session.EventStats:
		m.stats = ev.Stats
		m.power = ev.Stats.State
		m.haveStats = true
		m.lastUpdate = time.Now()

	case session.EventPowerState:
		m.power = ev.Power

	case session.EventDisconnected:
		m.ended = true
		if ev.Err != nil {
			m.errMsg = ev.Err.Error()
		}
	}
}

// waitEventCmd blocks on the next session event.
func (m Model) waitEventCmd() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return nil
		}
		return sessionEventMsg(ev)
	}
}

// spinnerTickCmd schedules the next spinner frame.
func (m Model) spinnerTickCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

// LayoutMode returns the layout tier for the current terminal width.
func (m Model) LayoutMode() LayoutMode {
	switch {
	case m.width >= BreakpointStandard:
		return LayoutStandard
	case m.width >= BreakpointCompact:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}

// ShowFooter reports whether the terminal is tall enough for the footer.
func (m Model) ShowFooter() bool {
	return m.height >= HeightMinimal
}

// SecondsSinceUpdate returns how long ago the last stats push arrived.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(time.Since(m.lastUpdate).Seconds())
}

// ConnectingSpinner returns the current spinner frame character.
func (m Model) ConnectingSpinner() string {
	return connectingSpinnerFrames[m.spinnerFrame%len(connectingSpinnerFrames)]
}
