package session

import "github.com/pterodash/pterodash/internal/api"

// State is the session lifecycle position. Transitions only move forward
// except for the Authenticated/Streaming pair, which cycles on token renewal.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateAuthenticated
	StateStreaming
	StateClosed
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateAuthenticated:
		return "authenticated"
	case StateStreaming:
		return "streaming"
	case StateClosed:
		return "closed"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// EventKind discriminates Event payloads.
type EventKind int

const (
	// EventStateChange carries the new lifecycle State.
	EventStateChange EventKind = iota
	// EventConsoleOutput carries one or more console lines in arrival order.
	EventConsoleOutput
	// EventStats carries a parsed resource snapshot.
	EventStats
	// EventPowerState carries a pushed power-state change.
	EventPowerState
	// EventTokenRefreshed signals a completed transparent reconnect.
	EventTokenRefreshed
	// EventDisconnected signals the session ended. Err is nil for a
	// graceful close and non-nil for a transport failure.
	EventDisconnected
)

// Event is what the session surfaces to its consumer. Exactly one payload
// field is meaningful per Kind.
type Event struct {
	Kind  EventKind
	State State
	Lines []string
	Stats api.StatsSnapshot
	Power api.PowerState
	Err   error
}
