package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pterodash/pterodash/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "ptlc_testkey", 5*time.Second)
}

func TestListServers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/client", r.URL.Path)
		assert.Equal(t, "Bearer ptlc_testkey", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"attributes":{"identifier":"a1b2c3d4","uuid":"a1b2c3d4-0000","name":"survival","description":"main world","node":"node01"}},
			{"attributes":{"identifier":"e5f6a7b8","uuid":"e5f6a7b8-0000","name":"creative","description":"","node":"node02"}}
		]}`))
	})

	servers, err := client.ListServers(context.Background())
	require.NoError(t, err)
	require.Len(t, servers, 2)
	assert.Equal(t, "a1b2c3d4", servers[0].Identifier)
	assert.Equal(t, "survival", servers[0].Name)
	assert.Equal(t, "node02", servers[1].Node)
}

func TestResources(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/client/servers/a1b2c3d4/resources", r.URL.Path)
		_, _ = w.Write([]byte(`{"attributes":{
			"current_state":"running",
			"resources":{"memory_bytes":1073741824,"cpu_absolute":42.5,"disk_bytes":2147483648,"network_rx_bytes":1000,"network_tx_bytes":2000}
		}}`))
	})

	snap, err := client.Resources(context.Background(), "a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, 42.5, snap.CPUPercent)
	assert.Equal(t, uint64(1073741824), snap.MemoryBytes)
	assert.Equal(t, uint64(1000), snap.Network.RxBytes)
	assert.Equal(t, uint64(2000), snap.Network.TxBytes)
}

func TestPower(t *testing.T) {
	var got map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/client/servers/a1b2c3d4/power", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.Power(context.Background(), "a1b2c3d4", SignalRestart)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"signal": "restart"}, got)
}

func TestPowerRejectsUnknownSignal(t *testing.T) {
	client := NewClient("https://panel.example.com", "key", time.Second)
	err := client.Power(context.Background(), "a1b2c3d4", PowerSignal("reboot"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrAPI))
}

func TestSendCommand(t *testing.T) {
	var got map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/client/servers/a1b2c3d4/command", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.SendCommand(context.Background(), "a1b2c3d4", "say hello")
	require.NoError(t, err)
	assert.Equal(t, "say hello", got["command"])
}

func TestWebsocketCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/client/servers/a1b2c3d4/websocket", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"token":"jwt-token","socket":"wss://node01.example.com:8080/api/servers/uuid/ws"}}`))
	})

	creds, err := client.WebsocketCredentials(context.Background(), "a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", creds.Token)
	assert.Equal(t, "wss://node01.example.com:8080/api/servers/uuid/ws", creds.Socket)
}

func TestWebsocketCredentialsIncomplete(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"token":"","socket":""}}`))
	})

	_, err := client.WebsocketCredentials(context.Background(), "a1b2c3d4")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrAPI))
}

func TestStatusErrorDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errors":[{"code":"HttpForbiddenException","detail":"This action is unauthorized."}]}`))
	})

	_, err := client.ListServers(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrAPI))
	assert.Contains(t, err.Error(), "This action is unauthorized.")
}

func TestUnreadableBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>proxy error</html>"))
	})

	_, err := client.ListServers(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrAPI))
}

func TestOfflineSnapshot(t *testing.T) {
	snap := OfflineSnapshot()
	assert.Equal(t, StateOffline, snap.State)
	assert.Zero(t, snap.CPUPercent)
	assert.Zero(t, snap.Network.RxBytes)
}

func TestPowerSignalFlags(t *testing.T) {
	assert.True(t, SignalStop.Destructive())
	assert.True(t, SignalKill.Destructive())
	assert.False(t, SignalStart.Destructive())
	assert.False(t, SignalRestart.Destructive())
	assert.True(t, SignalStart.Valid())
	assert.False(t, PowerSignal("reboot").Valid())
}
