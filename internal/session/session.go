// Package session maintains one realtime websocket session to a server's
// daemon: credential exchange, auth, frame dispatch, transparent token
// renewal, and teardown. Consumers read typed events from a channel.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pterodash/pterodash/internal/api"
	"github.com/pterodash/pterodash/internal/errors"
	"github.com/pterodash/pterodash/internal/logger"
	"github.com/pterodash/pterodash/internal/metrics"
)

// ErrNotConnected is returned by SendCommand before auth completes or after
// the session ends.
var ErrNotConnected = errors.New(errors.ErrSocket,
	"Not connected to the server",
	"Open a console or monitor session first")

// Mode selects the session's opening behavior. Console sessions request the
// scrollback backlog shortly after auth; monitor sessions only consume pushes.
type Mode int

const (
	ModeMonitor Mode = iota
	ModeConsole
)

// DefaultBacklogDelay is how long a console session waits after auth before
// requesting the log backlog. The daemon drops a 'send logs' that arrives
// before it finishes registering the connection.
const DefaultBacklogDelay = 500 * time.Millisecond

// CredentialSource exchanges the API key for short-lived socket credentials.
// *api.Client satisfies it.
type CredentialSource interface {
	WebsocketCredentials(ctx context.Context, id string) (api.Credentials, error)
}

// Config assembles a Session's collaborators.
type Config struct {
	ServerID     string
	Origin       string // panel URL without trailing slash
	Mode         Mode
	HistorySize  int
	BacklogDelay time.Duration
	Credentials  CredentialSource
	Dial         DialFunc
	Logger       logger.Logger
}

// Session is one live connection to a server's daemon. It owns exactly one
// transport at a time; token renewal swaps the transport atomically from the
// consumer's point of view.
type Session struct {
	cfg     Config
	log     logger.Logger
	history *metrics.History
	events  chan Event

	mu        sync.Mutex
	state     State
	conn      Transport
	gen       uint64
	closed    bool
	backlogOK bool
	renewing  bool
}

// New creates an idle session. Call Open to connect.
func New(cfg Config) *Session {
	if cfg.Dial == nil {
		cfg.Dial = DialWebsocket
	}
	if cfg.BacklogDelay <= 0 {
		cfg.BacklogDelay = DefaultBacklogDelay
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Noop()
	}
	return &Session{
		cfg:     cfg,
		log:     log,
		history: metrics.NewHistory(cfg.HistorySize),
		events:  make(chan Event, 256),
	}
}

// Events is the consumer-facing stream. It is never closed; consumers stop
// reading after EventDisconnected.
func (s *Session) Events() <-chan Event { return s.events }

// History exposes the rolling metric channels fed by stats frames.
func (s *Session) History() *metrics.History { return s.history }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Open exchanges credentials, dials the daemon, and authenticates. It returns
// once the auth frame is sent; auth confirmation arrives as an event. Open is
// one-shot: a session that has been opened or closed cannot be reopened.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return errors.New(errors.ErrSocket, "Session already used", "Create a new session to reconnect")
	}
	s.state = StateConnecting
	s.mu.Unlock()
	s.emit(Event{Kind: EventStateChange, State: StateConnecting})

	conn, gen, err := s.connect(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	go s.readLoop(ctx, conn, gen)

	if s.cfg.Mode == ModeConsole {
		s.scheduleBacklog(ctx, gen)
	}
	return nil
}

// connect performs one credential exchange + dial + auth and installs the
// resulting transport. Used by Open and by token renewal.
func (s *Session) connect(ctx context.Context) (Transport, uint64, error) {
	creds, err := s.cfg.Credentials.WebsocketCredentials(ctx, s.cfg.ServerID)
	if err != nil {
		return nil, 0, err
	}

	conn, err := s.cfg.Dial(ctx, creds.Socket, s.cfg.Origin)
	if err != nil {
		return nil, 0, err
	}

	authFrame, err := encodeFrame(eventAuth, creds.Token)
	if err != nil {
		conn.Close()
		return nil, 0, errors.WrapWithCode(err, errors.ErrSocket, "Failed to encode auth frame", "")
	}
	if err := conn.Write(ctx, authFrame); err != nil {
		conn.Close()
		return nil, 0, errors.WrapWithCode(err, errors.ErrSocket, "Failed to authenticate with the daemon", "")
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return nil, 0, errors.New(errors.ErrSocket, "Session closed during connect", "")
	}
	old := s.conn
	s.conn = conn
	s.gen++
	gen := s.gen
	s.state = StateAuthenticated
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}
	s.emit(Event{Kind: EventStateChange, State: StateAuthenticated})
	return conn, gen, nil
}

// scheduleBacklog requests the console scrollback after a short delay, once
// per session. The timer no-ops if the session closed or renewed in between.
func (s *Session) scheduleBacklog(ctx context.Context, gen uint64) {
	time.AfterFunc(s.cfg.BacklogDelay, func() {
		s.mu.Lock()
		if s.closed || s.gen != gen || s.backlogOK {
			s.mu.Unlock()
			return
		}
		s.backlogOK = true
		conn := s.conn
		s.mu.Unlock()

		data, err := encodeFrame(eventSendLogs, nil)
		if err != nil {
			return
		}
		if err := conn.Write(ctx, data); err != nil {
			s.log.Debug("backlog request failed: %v", err)
		}
	})
}

// readLoop pulls frames from one transport until it fails. A loop whose
// generation has been superseded exits without touching session state, so a
// renewal's old socket can die quietly.
func (s *Session) readLoop(ctx context.Context, conn Transport, gen uint64) {
	for {
		data, err := conn.Read(ctx)
		if err != nil {
			s.mu.Lock()
			stale := s.closed || s.gen != gen
			if !stale {
				s.state = StateError
				s.conn = nil
			}
			s.mu.Unlock()
			if stale {
				return
			}
			conn.Close()
			// No automatic retry: surface the failure and let the
			// caller decide whether to open a fresh session.
			s.emit(Event{Kind: EventStateChange, State: StateError})
			s.emit(Event{Kind: EventDisconnected, Err: errors.WrapWithCode(err, errors.ErrSocket,
				"Lost connection to the daemon",
				"Reopen the session to reconnect")})
			return
		}
		s.dispatch(ctx, data, gen)
	}
}

// dispatch routes one inbound frame. Malformed frames are dropped without
// ending the session; unrecognized events are ignored. Frames read from a
// superseded or closed socket are dropped before any handler runs.
func (s *Session) dispatch(ctx context.Context, data []byte, gen uint64) {
	s.mu.Lock()
	stale := s.closed || s.gen != gen
	s.mu.Unlock()
	if stale {
		return
	}

	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		s.log.Debug("dropping malformed frame: %v", err)
		return
	}

	switch f.Event {
	case eventAuthSuccess:
		s.mu.Lock()
		s.state = StateStreaming
		s.mu.Unlock()
		s.emit(Event{Kind: EventStateChange, State: StateStreaming})
		if gen > 1 {
			s.emit(Event{Kind: EventTokenRefreshed})
		}

	case eventConsoleOutput:
		lines := make([]string, 0, len(f.Args))
		for _, raw := range f.Args {
			var line string
			if err := json.Unmarshal(raw, &line); err != nil {
				continue
			}
			lines = append(lines, line)
		}
		if len(lines) > 0 {
			s.emit(Event{Kind: EventConsoleOutput, Lines: lines})
		}

	case eventStats:
		if len(f.Args) == 0 {
			return
		}
		payload, ok := decodeStats(f.Args[0])
		if !ok {
			s.log.Debug("dropping undecodable stats frame")
			return
		}
		snap := payload.snapshot()
		s.history.Observe(snap)
		s.emit(Event{Kind: EventStats, Stats: snap})

	case eventStatus:
		if len(f.Args) == 0 {
			return
		}
		var state string
		if err := json.Unmarshal(f.Args[0], &state); err != nil {
			return
		}
		s.emit(Event{Kind: EventPowerState, Power: api.PowerState(state)})

	case eventTokenExpiring, eventTokenExpired:
		// The daemon repeats the warning ('token expired' follows a slow
		// renewal); only one renewal may run at a time.
		s.mu.Lock()
		if s.renewing {
			s.mu.Unlock()
			return
		}
		s.renewing = true
		s.mu.Unlock()
		go s.renew(ctx, gen)
	}
}

// renew swaps in a fresh transport when the daemon warns the token is about
// to lapse. Consumer state (history, log store) is untouched; only the
// transport changes. On failure the current socket is left running until the
// daemon drops it.
func (s *Session) renew(ctx context.Context, gen uint64) {
	defer func() {
		s.mu.Lock()
		s.renewing = false
		s.mu.Unlock()
	}()

	s.mu.Lock()
	live := !s.closed && s.gen == gen
	s.mu.Unlock()
	if !live {
		return
	}

	s.log.Debug("socket token expiring, renewing")
	conn, newGen, err := s.connect(ctx)
	if err != nil {
		s.mu.Lock()
		stale := s.closed || s.gen != gen
		s.mu.Unlock()
		if !stale {
			s.log.Warn("token renewal failed: %v", err)
		}
		return
	}

	go s.readLoop(ctx, conn, newGen)
}

// SendCommand writes a console command frame. The daemon does not ack
// commands; a nil return means the frame was written.
func (s *Session) SendCommand(ctx context.Context, text string) error {
	s.mu.Lock()
	if s.closed || (s.state != StateAuthenticated && s.state != StateStreaming) || s.conn == nil {
		s.mu.Unlock()
		return ErrNotConnected
	}
	conn := s.conn
	s.mu.Unlock()

	data, err := encodeFrame(eventSendCommand, text)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrCommand, "Failed to encode command", "")
	}
	if err := conn.Write(ctx, data); err != nil {
		return errors.WrapWithCode(err, errors.ErrCommand,
			"Failed to deliver command",
			"The connection may have dropped; check the session state")
	}
	return nil
}

// Close ends the session. All pending timers, renewals, and reader loops
// become no-ops. Safe to call in any state, including twice.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.state = StateClosed
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	s.emit(Event{Kind: EventStateChange, State: StateClosed})
	s.emit(Event{Kind: EventDisconnected})
}

// fail records a terminal error reached before the session ever streamed.
func (s *Session) fail(err error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state = StateError
	s.mu.Unlock()
	s.emit(Event{Kind: EventStateChange, State: StateError})
	s.emit(Event{Kind: EventDisconnected, Err: err})
}

// emit delivers an event without blocking the reader goroutine. A consumer
// that stops draining loses events rather than wedging the session.
func (s *Session) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
		s.log.Debug("event buffer full, dropping kind=%d", ev.Kind)
	}
}
