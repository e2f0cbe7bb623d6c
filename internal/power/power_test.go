package power

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pterodash/pterodash/internal/api"
)

type fakeSignaler struct {
	mu      sync.Mutex
	calls   []api.PowerSignal
	failing bool
}

func (f *fakeSignaler) Power(ctx context.Context, id string, signal api.PowerSignal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return fmt.Errorf("panel rejected signal")
	}
	f.calls = append(f.calls, signal)
	return nil
}

func (f *fakeSignaler) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// instantWaiter runs the probe schedule without real delays, recording them.
func instantWaiter(delays *[]time.Duration, mu *sync.Mutex) func(context.Context, time.Duration) bool {
	return func(ctx context.Context, d time.Duration) bool {
		mu.Lock()
		*delays = append(*delays, d)
		mu.Unlock()
		return ctx.Err() == nil
	}
}

func TestDestructiveSignalRequiresConfirmation(t *testing.T) {
	signaler := &fakeSignaler{}
	orch := New(signaler, nil)

	for _, sig := range []api.PowerSignal{api.SignalStop, api.SignalKill} {
		err := orch.RequestTransition(context.Background(), "a1b2c3d4", sig, false, nil)
		assert.ErrorIs(t, err, ErrConfirmationRequired)
	}
	// The endpoint was never contacted.
	assert.Zero(t, signaler.callCount())
}

func TestNonDestructiveSignalNeedsNoConfirmation(t *testing.T) {
	signaler := &fakeSignaler{}
	orch := New(signaler, nil)

	require.NoError(t, orch.RequestTransition(context.Background(), "a1b2c3d4", api.SignalStart, false, nil))
	require.NoError(t, orch.RequestTransition(context.Background(), "a1b2c3d4", api.SignalRestart, false, nil))
	assert.Equal(t, 2, signaler.callCount())
}

func TestConfirmedDestructiveSignalSends(t *testing.T) {
	signaler := &fakeSignaler{}
	orch := New(signaler, nil)

	require.NoError(t, orch.RequestTransition(context.Background(), "a1b2c3d4", api.SignalKill, true, nil))
	assert.Equal(t, 1, signaler.callCount())
}

func TestProbeScheduleOffsets(t *testing.T) {
	var mu sync.Mutex
	var delays []time.Duration
	signaler := &fakeSignaler{}
	orch := New(signaler, nil, WithWaiter(instantWaiter(&delays, &mu)))

	var refreshMu sync.Mutex
	refreshes := 0
	done := make(chan struct{})
	refresh := func(ctx context.Context) {
		refreshMu.Lock()
		refreshes++
		if refreshes == 8 {
			close(done)
		}
		refreshMu.Unlock()
	}

	require.NoError(t, orch.RequestTransition(context.Background(), "a1b2c3d4", api.SignalStart, false, refresh))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("probe schedule never completed")
	}

	mu.Lock()
	defer mu.Unlock()
	// Inter-probe gaps for the 1,2,4,6,10,15,20,30s schedule.
	want := []time.Duration{
		1 * time.Second, 1 * time.Second, 2 * time.Second, 2 * time.Second,
		4 * time.Second, 5 * time.Second, 5 * time.Second, 10 * time.Second,
	}
	assert.Equal(t, want, delays)
}

func TestFailedSendStartsNoProbes(t *testing.T) {
	signaler := &fakeSignaler{failing: true}
	var mu sync.Mutex
	var delays []time.Duration
	orch := New(signaler, nil, WithWaiter(instantWaiter(&delays, &mu)))

	refreshed := false
	err := orch.RequestTransition(context.Background(), "a1b2c3d4", api.SignalStart, false, func(ctx context.Context) {
		refreshed = true
	})
	require.Error(t, err)

	time.Sleep(20 * time.Millisecond)
	assert.False(t, refreshed)
	mu.Lock()
	assert.Empty(t, delays)
	mu.Unlock()
}

func TestCancelStopsRemainingProbes(t *testing.T) {
	signaler := &fakeSignaler{}
	ctx, cancel := context.WithCancel(context.Background())

	var refreshMu sync.Mutex
	refreshes := 0
	stopped := make(chan struct{})

	orch := New(signaler, nil, WithWaiter(func(ctx context.Context, d time.Duration) bool {
		if ctx.Err() != nil {
			close(stopped)
			return false
		}
		return true
	}))

	refresh := func(ctx context.Context) {
		refreshMu.Lock()
		refreshes++
		if refreshes == 3 {
			cancel()
		}
		refreshMu.Unlock()
	}

	require.NoError(t, orch.RequestTransition(ctx, "a1b2c3d4", api.SignalRestart, false, refresh))

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("cancel did not stop the probe loop")
	}

	refreshMu.Lock()
	defer refreshMu.Unlock()
	assert.Equal(t, 3, refreshes)
}
