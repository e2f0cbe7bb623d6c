package metrics

import (
	"sync"

	"github.com/pterodash/pterodash/internal/api"
)

// History tracks the four metric channels for one server session: CPU
// percentage, memory bytes, and derived network in/out deltas. All four
// windows advance in lockstep, one push per observed snapshot, so their
// time indices stay aligned for overlay charts.
type History struct {
	mu       sync.RWMutex
	cpu      Window
	memory   Window
	rx       Window
	tx       Window
	baseline *Baseline
	latest   api.StatsSnapshot
	seen     bool
}

// NewHistory creates a history with n samples per channel.
func NewHistory(n int) *History {
	return &History{
		cpu:    NewWindow(n),
		memory: NewWindow(n),
		rx:     NewWindow(n),
		tx:     NewWindow(n),
	}
}

// Observe folds a snapshot into all channels, deriving network deltas
// against the running baseline.
func (h *History) Observe(snap api.StatsSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	deltas, next := Derive(snap, h.baseline)
	h.baseline = next
	h.latest = snap
	h.seen = true

	h.cpu = h.cpu.Push(snap.CPUPercent)
	h.memory = h.memory.Push(float64(snap.MemoryBytes))
	h.rx = h.rx.Push(float64(deltas.RxBytes))
	h.tx = h.tx.Push(float64(deltas.TxBytes))
}

// Latest returns the most recent snapshot and whether one has been observed.
func (h *History) Latest() (api.StatsSnapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest, h.seen
}

// CPU returns a copy of the CPU percentage channel.
func (h *History) CPU() []float64 { return h.channel(&h.cpu) }

// Memory returns a copy of the memory bytes channel.
func (h *History) Memory() []float64 { return h.channel(&h.memory) }

// NetworkRx returns a copy of the inbound network delta channel.
func (h *History) NetworkRx() []float64 { return h.channel(&h.rx) }

// NetworkTx returns a copy of the outbound network delta channel.
func (h *History) NetworkTx() []float64 { return h.channel(&h.tx) }

func (h *History) channel(w *Window) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]float64, len(*w))
	copy(out, *w)
	return out
}
