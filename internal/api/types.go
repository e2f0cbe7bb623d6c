package api

// Server is a single server the account can manage.
type Server struct {
	Identifier  string
	UUID        string
	Name        string
	Description string
	Node        string
}

// PowerState is the remote process state as reported by the daemon.
type PowerState string

const (
	StateRunning  PowerState = "running"
	StateOffline  PowerState = "offline"
	StateStarting PowerState = "starting"
	StateStopping PowerState = "stopping"
)

// StatsSnapshot is a full resource-usage reading. It arrives either from the
// REST resources endpoint or as a websocket stats frame; both carry the same
// shape. Network counters are cumulative since the server process started.
type StatsSnapshot struct {
	State            PowerState
	CPUPercent       float64
	MemoryBytes      uint64
	MemoryLimitBytes uint64
	DiskBytes        uint64
	Network          NetworkCounters
}

// NetworkCounters holds cumulative byte counters, not rates.
type NetworkCounters struct {
	RxBytes uint64
	TxBytes uint64
}

// OfflineSnapshot returns the zeroed snapshot callers substitute when the
// resources endpoint is unreachable. Downstream consumers treat it as an
// ordinary reading.
func OfflineSnapshot() StatsSnapshot {
	return StatsSnapshot{State: StateOffline}
}

// Credentials is a single-use token + socket address pair for one websocket
// connection attempt. It expires server-side; renewal obtains a fresh pair
// rather than mutating this one.
type Credentials struct {
	Token  string
	Socket string
}

// PowerSignal is a one-shot state-transition command.
type PowerSignal string

const (
	SignalStart   PowerSignal = "start"
	SignalStop    PowerSignal = "stop"
	SignalRestart PowerSignal = "restart"
	SignalKill    PowerSignal = "kill"
)

// Destructive reports whether the signal should be gated behind explicit
// user confirmation before it is sent.
func (s PowerSignal) Destructive() bool {
	return s == SignalStop || s == SignalKill
}

// Valid reports whether the signal is one the panel accepts.
func (s PowerSignal) Valid() bool {
	switch s {
	case SignalStart, SignalStop, SignalRestart, SignalKill:
		return true
	}
	return false
}
