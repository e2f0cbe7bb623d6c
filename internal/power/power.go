// Package power orchestrates server power transitions: confirmation gating
// for destructive signals and follow-up state probes after a signal is sent.
package power

import (
	"context"
	"time"

	"github.com/pterodash/pterodash/internal/api"
	"github.com/pterodash/pterodash/internal/errors"
	"github.com/pterodash/pterodash/internal/logger"
)

// ErrConfirmationRequired is returned when a destructive signal arrives
// without explicit confirmation. The panel endpoint is never contacted.
var ErrConfirmationRequired = errors.New(errors.ErrCommand,
	"This power action stops the server and requires confirmation",
	"Re-run with --yes or confirm the prompt")

// ProbeWindow is the total span of the probe schedule. Callers that want to
// watch a transition complete should wait this long after a send.
const ProbeWindow = 30 * time.Second

// probeSchedule is when to re-read server state after a signal is accepted,
// as offsets from the send. Transitions are asynchronous on the daemon side;
// the early probes catch fast flips, the late ones slow shutdowns.
var probeSchedule = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	4 * time.Second,
	6 * time.Second,
	10 * time.Second,
	15 * time.Second,
	20 * time.Second,
	30 * time.Second,
}

// Signaler is the REST power endpoint. *api.Client satisfies it.
type Signaler interface {
	Power(ctx context.Context, id string, signal api.PowerSignal) error
}

// RefreshFunc re-reads the server's state; invoked once per probe.
type RefreshFunc func(ctx context.Context)

// Orchestrator sends power signals and drives the probe schedule.
type Orchestrator struct {
	api  Signaler
	log  logger.Logger
	wait func(ctx context.Context, d time.Duration) bool
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithWaiter replaces the probe delay function (used in tests).
func WithWaiter(wait func(ctx context.Context, d time.Duration) bool) Option {
	return func(o *Orchestrator) { o.wait = wait }
}

// New creates an orchestrator around the given power endpoint.
func New(signaler Signaler, log logger.Logger, opts ...Option) *Orchestrator {
	if log == nil {
		log = logger.Noop()
	}
	o := &Orchestrator{api: signaler, log: log, wait: sleepContext}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RequestTransition validates, sends the signal, and on success starts the
// probe schedule in the background. Destructive signals (stop, kill) are
// refused before any network traffic unless confirmed. A failed send starts
// no probes. Cancelling ctx stops any remaining probes.
func (o *Orchestrator) RequestTransition(ctx context.Context, id string, signal api.PowerSignal, confirmed bool, refresh RefreshFunc) error {
	if signal.Destructive() && !confirmed {
		return ErrConfirmationRequired
	}

	if err := o.api.Power(ctx, id, signal); err != nil {
		return err
	}
	o.log.Debug("power signal %s accepted for %s", signal, id)

	if refresh != nil {
		go o.probe(ctx, refresh)
	}
	return nil
}

// probe walks the schedule, refreshing at each offset until ctx is cancelled.
func (o *Orchestrator) probe(ctx context.Context, refresh RefreshFunc) {
	elapsed := time.Duration(0)
	for _, offset := range probeSchedule {
		if !o.wait(ctx, offset-elapsed) {
			return
		}
		elapsed = offset
		refresh(ctx)
	}
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
