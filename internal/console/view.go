package console

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pterodash/pterodash/internal/api"
	"github.com/pterodash/pterodash/internal/session"
	"github.com/pterodash/pterodash/internal/ui"
)

// Key bindings.
const (
	KeyQuit   = "ctrl+c"
	KeyUpload = "ctrl+u"
	KeySend   = "enter"
)

// commandTimeout bounds one command or upload round trip.
const commandTimeout = 10 * time.Second

// Uploader publishes the console log and returns a shareable URL.
// *logexport.Client satisfies it.
type Uploader interface {
	Upload(ctx context.Context, content string) (string, error)
}

// sessionEventMsg wraps one event from the session stream.
type sessionEventMsg session.Event

// commandResultMsg reports a command delivery attempt. text is echoed back
// so a rejected command can stay in the input field.
type commandResultMsg struct {
	text string
	err  error
}

// uploadResultMsg reports a log upload attempt.
type uploadResultMsg struct {
	url string
	err error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(string(ui.ColorMuted))).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(string(ui.ColorError))).Padding(0, 1)
	urlStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(string(ui.ColorInfo))).Bold(true)
)

// Model is the interactive console view: scrollback viewport on top, command
// input at the bottom. The log store is owned here and survives reconnects.
type Model struct {
	server   api.Server
	sess     *session.Session
	events   <-chan session.Event
	store    *LogStore
	uploader Uploader

	vp        viewport.Model
	input     textinput.Model
	ready     bool
	width     int
	height    int
	state     session.State
	status    string
	statusErr bool
	uploading bool
	ended     bool
	quitting  bool
}

// NewModel creates a console view around an opened session.
func NewModel(server api.Server, sess *session.Session, uploader Uploader) Model {
	input := textinput.New()
	input.Placeholder = "type a command, enter to send"
	input.Prompt = "> "
	input.CharLimit = 512
	input.Focus()

	return Model{
		server:   server,
		sess:     sess,
		events:   sess.Events(),
		store:    NewLogStore(),
		uploader: uploader,
		input:    input,
		state:    sess.State(),
	}
}

// Store exposes the log store (shared with the upload path).
func (m Model) Store() *LogStore { return m.store }

// Init starts event polling and the input cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitEventCmd(), textinput.Blink)
}

// Update handles messages and advances the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case KeyQuit:
			m.quitting = true
			m.sess.Close()
			return m, tea.Quit

		case KeyUpload:
			if m.uploading || m.uploader == nil {
				return m, nil
			}
			m.uploading = true
			m.setStatus("uploading console log...", false)
			return m, m.uploadCmd()

		case KeySend:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			return m, m.sendCmd(text)
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case sessionEventMsg:
		m.applyEvent(session.Event(msg))
		if m.ended {
			return m, nil
		}
		return m, m.waitEventCmd()

	case commandResultMsg:
		if msg.err != nil {
			// Rejected: the command stays in the input for retry.
			m.input.SetValue(msg.text)
			m.setStatus(msg.err.Error(), true)
		} else {
			m.input.SetValue("")
			m.setStatus("", false)
		}

	case uploadResultMsg:
		m.uploading = false
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
		} else {
			m.setStatus("log uploaded: "+msg.url, false)
		}

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the console frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return titleStyle.Render(m.server.Name) + "\n" +
			statusStyle.Render("connecting ("+m.state.String()+")")
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m Model) renderTitle() string {
	return titleStyle.Render(m.server.Name) +
		statusStyle.Render("console · "+m.state.String())
}

func (m Model) renderStatus() string {
	if m.status != "" {
		if m.statusErr {
			return errorStyle.Render(ui.SymbolFail + " " + m.status)
		}
		if strings.HasPrefix(m.status, "log uploaded: ") {
			return statusStyle.Render(ui.SymbolSuccess+" log uploaded ") +
				urlStyle.Render(strings.TrimPrefix(m.status, "log uploaded: "))
		}
		return statusStyle.Render(m.status)
	}
	return statusStyle.Render("enter send · ctrl+u upload log · ctrl+c quit")
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// applyEvent folds one session event into the view.
func (m *Model) applyEvent(ev session.Event) {
	switch ev.Kind {
	case session.EventStateChange:
		m.state = ev.State

	case session.EventConsoleOutput:
		m.store.Append(ev.Lines...)
		m.refreshViewport()

	case session.EventDisconnected:
		m.ended = true
		if ev.Err != nil {
			m.setStatus(ev.Err.Error(), true)
		} else {
			m.setStatus("session closed", false)
		}
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	// Title, input, and status each take one line.
	vpHeight := height - 3
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.vp = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.vp.Width = width
		m.vp.Height = vpHeight
	}
	m.input.Width = width - 4
	m.refreshViewport()
}

// refreshViewport re-renders the scrollback and keeps the tail visible.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	atBottom := m.vp.AtBottom()
	m.vp.SetContent(strings.Join(m.store.Lines(), "\n"))
	if atBottom {
		m.vp.GotoBottom()
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

// sendCmd delivers a command over the socket.
func (m Model) sendCmd(text string) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return commandResultMsg{text: text, err: sess.SendCommand(ctx, text)}
	}
}

// uploadCmd publishes the current scrollback.
func (m Model) uploadCmd() tea.Cmd {
	uploader := m.uploader
	content := m.store.Text()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		url, err := uploader.Upload(ctx, content)
		return uploadResultMsg{url: url, err: err}
	}
}
