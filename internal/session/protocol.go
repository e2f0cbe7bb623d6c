package session

import (
	"encoding/json"

	"github.com/pterodash/pterodash/internal/api"
)

// Wire events. The daemon speaks a small JSON envelope in both directions:
// {"event": "...", "args": [...]}.
const (
	eventAuth          = "auth"
	eventAuthSuccess   = "auth success"
	eventSendLogs      = "send logs"
	eventSendCommand   = "send command"
	eventConsoleOutput = "console output"
	eventStats         = "stats"
	eventStatus        = "status"
	eventTokenExpiring = "token expiring"
	eventTokenExpired  = "token expired"
)

type frame struct {
	Event string            `json:"event"`
	Args  []json.RawMessage `json:"args,omitempty"`
}

func encodeFrame(event string, args ...interface{}) ([]byte, error) {
	f := frame{Event: event}
	for _, arg := range args {
		raw, err := json.Marshal(arg)
		if err != nil {
			return nil, err
		}
		f.Args = append(f.Args, raw)
	}
	return json.Marshal(f)
}

// statsPayload is the daemon's resource push. It arrives JSON-encoded as a
// string inside args[0] of a 'stats' frame.
type statsPayload struct {
	State            string  `json:"state"`
	CPUAbsolute      float64 `json:"cpu_absolute"`
	MemoryBytes      uint64  `json:"memory_bytes"`
	MemoryLimitBytes uint64  `json:"memory_limit_bytes"`
	DiskBytes        uint64  `json:"disk_bytes"`
	Network          struct {
		RxBytes uint64 `json:"rx_bytes"`
		TxBytes uint64 `json:"tx_bytes"`
	} `json:"network"`
}

func (p statsPayload) snapshot() api.StatsSnapshot {
	return api.StatsSnapshot{
		State:            api.PowerState(p.State),
		CPUPercent:       p.CPUAbsolute,
		MemoryBytes:      p.MemoryBytes,
		MemoryLimitBytes: p.MemoryLimitBytes,
		DiskBytes:        p.DiskBytes,
		Network: api.NetworkCounters{
			RxBytes: p.Network.RxBytes,
			TxBytes: p.Network.TxBytes,
		},
	}
}

// decodeStats handles both encodings seen in the wild: args[0] as a
// JSON-encoded string (the daemon's own format) and args[0] as a bare object.
func decodeStats(raw json.RawMessage) (statsPayload, bool) {
	var p statsPayload
	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &p); err != nil {
			return p, false
		}
		return p, true
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, false
	}
	return p, true
}
