// Package metrics derives rate metrics from cumulative counters and keeps
// fixed-length rolling history for the dashboard sparklines.
package metrics

import "github.com/pterodash/pterodash/internal/api"

// Baseline holds the last-seen cumulative network counters for one session.
// A nil Baseline means no snapshot has been observed yet.
type Baseline struct {
	Rx uint64
	Tx uint64
}

// Deltas is the per-interval change derived from two successive snapshots.
type Deltas struct {
	RxBytes uint64
	TxBytes uint64
}

// Derive computes monotonic-safe network deltas from a snapshot against the
// previous baseline. With no baseline the deltas are zero. A counter that
// moved backwards (daemon restart resets it) clamps to zero rather than
// producing a negative or wrapped-huge rate. The returned baseline always
// carries the snapshot's counters, whichever branch was taken.
func Derive(snap api.StatsSnapshot, baseline *Baseline) (Deltas, *Baseline) {
	next := &Baseline{Rx: snap.Network.RxBytes, Tx: snap.Network.TxBytes}

	if baseline == nil {
		return Deltas{}, next
	}

	var d Deltas
	if snap.Network.RxBytes >= baseline.Rx {
		d.RxBytes = snap.Network.RxBytes - baseline.Rx
	}
	if snap.Network.TxBytes >= baseline.Tx {
		d.TxBytes = snap.Network.TxBytes - baseline.Tx
	}
	return d, next
}
