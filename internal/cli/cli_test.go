package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pterodash/pterodash/internal/api"
)

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"servers", "console", "monitor", "power", "command", "init", "version", "completion"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "dev", formatVersion("dev"))
	assert.Equal(t, "v1.2.3", formatVersion("1.2.3"))
	assert.Equal(t, "v1.2.3", formatVersion("v1.2.3"))
	assert.Equal(t, "", formatVersion(""))
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("9.9.9", "abc", "today")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })
	assert.Equal(t, "9.9.9", GetVersion())
}

func listClient(t *testing.T) *api.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[
			{"attributes":{"identifier":"a1b2c3d4","name":"survival","node":"node01"}},
			{"attributes":{"identifier":"e5f6a7b8","name":"creative","node":"node02"}},
			{"attributes":{"identifier":"99999999","name":"Creative","node":"node03"}}
		]}`))
	}))
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, "key", 5*time.Second)
}

func TestResolveServerByIdentifier(t *testing.T) {
	server, err := resolveServer(context.Background(), listClient(t), "a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, "survival", server.Name)
}

func TestResolveServerByName(t *testing.T) {
	server, err := resolveServer(context.Background(), listClient(t), "survival")
	require.NoError(t, err)
	assert.Equal(t, "a1b2c3d4", server.Identifier)
}

func TestResolveServerAmbiguousName(t *testing.T) {
	_, err := resolveServer(context.Background(), listClient(t), "creative")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Multiple servers")
}

func TestResolveServerNotFound(t *testing.T) {
	_, err := resolveServer(context.Background(), listClient(t), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No server matching")
}

func TestExpectedState(t *testing.T) {
	assert.Equal(t, "running", expectedState(api.SignalStart))
	assert.Equal(t, "running", expectedState(api.SignalRestart))
	assert.Equal(t, "offline", expectedState(api.SignalStop))
	assert.Equal(t, "offline", expectedState(api.SignalKill))
}

func settledNow(tr *transitionTracker) bool {
	select {
	case <-tr.settled:
		return true
	default:
		return false
	}
}

func TestRestartNotSettledUntilServerDips(t *testing.T) {
	tr := newTransitionTracker(api.SignalRestart)

	// The first probe can still read 'running' before the stop phase
	// begins; that must not count as the restart completing.
	assert.True(t, tr.observe("running"))
	assert.False(t, settledNow(tr))

	assert.True(t, tr.observe("stopping"))
	assert.True(t, tr.observe("starting"))
	assert.False(t, settledNow(tr))

	assert.True(t, tr.observe("running"))
	assert.True(t, settledNow(tr))
}

func TestStopSettlesOnFirstOfflineReading(t *testing.T) {
	tr := newTransitionTracker(api.SignalStop)

	assert.True(t, tr.observe("stopping"))
	assert.False(t, settledNow(tr))

	assert.True(t, tr.observe("offline"))
	assert.True(t, settledNow(tr))
}

func TestTrackerSettlesAtMostOnce(t *testing.T) {
	tr := newTransitionTracker(api.SignalStop)

	tr.observe("offline")
	assert.True(t, settledNow(tr))

	// The state leaving and re-entering the target must not close the
	// channel a second time.
	assert.NotPanics(t, func() {
		tr.observe("starting")
		tr.observe("offline")
	})
}

func TestTrackerSuppressesRepeatedReadings(t *testing.T) {
	tr := newTransitionTracker(api.SignalStop)

	assert.True(t, tr.observe("stopping"))
	assert.False(t, tr.observe("stopping"))
	assert.True(t, tr.observe("offline"))
	assert.False(t, tr.observe("offline"))
}
