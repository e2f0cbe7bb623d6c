package console

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pterodash/pterodash/internal/api"
	"github.com/pterodash/pterodash/internal/session"
)

type fakeUploader struct {
	url  string
	err  error
	got  string
	seen bool
}

func (f *fakeUploader) Upload(ctx context.Context, content string) (string, error) {
	f.got = content
	f.seen = true
	return f.url, f.err
}

func testConsole(t *testing.T) (Model, *fakeUploader) {
	t.Helper()
	sess := session.New(session.Config{
		ServerID:    "a1b2c3d4",
		Origin:      "https://panel.example.com",
		Mode:        session.ModeConsole,
		HistorySize: 8,
	})
	t.Cleanup(sess.Close)

	uploader := &fakeUploader{url: "https://mclo.gs/abc123"}
	server := api.Server{Identifier: "a1b2c3d4", Name: "survival"}
	return NewModel(server, sess, uploader), uploader
}

func TestConsoleOutputAppendsToStore(t *testing.T) {
	m, _ := testConsole(t)
	m.resize(80, 24)

	m.applyEvent(session.Event{Kind: session.EventConsoleOutput, Lines: []string{"[Server] hello\r"}})
	m.applyEvent(session.Event{Kind: session.EventConsoleOutput, Lines: []string{"\x1b[32mready\x1b[0m"}})

	assert.Equal(t, []string{"[Server] hello", "ready"}, m.Store().Lines())
	assert.Contains(t, m.View(), "[Server] hello")
}

func TestRejectedCommandStaysInInput(t *testing.T) {
	m, _ := testConsole(t)
	m.resize(80, 24)
	m.store.Append("existing line")

	next, _ := m.Update(commandResultMsg{text: "say hello", err: fmt.Errorf("not connected")})
	m = next.(Model)

	// Input retains the command and the store is untouched.
	assert.Equal(t, "say hello", m.input.Value())
	assert.Equal(t, []string{"existing line"}, m.Store().Lines())
	assert.Contains(t, m.View(), "not connected")
}

func TestAcceptedCommandClearsInput(t *testing.T) {
	m, _ := testConsole(t)
	m.resize(80, 24)
	m.input.SetValue("say hello")

	next, _ := m.Update(commandResultMsg{text: "say hello", err: nil})
	m = next.(Model)
	assert.Equal(t, "", m.input.Value())
}

func TestEnterWithEmptyInputDoesNothing(t *testing.T) {
	m, _ := testConsole(t)
	m.resize(80, 24)
	m.input.SetValue("   ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestUploadFlow(t *testing.T) {
	m, uploader := testConsole(t)
	m.resize(80, 24)
	m.store.Append("line one", "line two")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.uploading)

	msg := cmd()
	result, ok := msg.(uploadResultMsg)
	require.True(t, ok)
	require.NoError(t, result.err)
	assert.Equal(t, "line one\nline two", uploader.got)

	next, _ = m.Update(result)
	m = next.(Model)
	assert.False(t, m.uploading)
	assert.Contains(t, m.View(), "https://mclo.gs/abc123")
}

func TestUploadFailureShowsError(t *testing.T) {
	m, uploader := testConsole(t)
	uploader.err = fmt.Errorf("service unavailable")
	m.resize(80, 24)
	m.store.Append("content")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	m = next.(Model)
	require.NotNil(t, cmd)

	next, _ = m.Update(cmd())
	m = next.(Model)
	assert.Contains(t, m.View(), "service unavailable")
}

func TestDisconnectEndsPolling(t *testing.T) {
	m, _ := testConsole(t)
	m.resize(80, 24)

	next, cmd := m.Update(sessionEventMsg(session.Event{Kind: session.EventDisconnected}))
	m = next.(Model)
	assert.True(t, m.ended)
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "session closed")
}

func TestQuitClosesSession(t *testing.T) {
	m, _ := testConsole(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, "", m.View())
}

func TestTypingReachesInput(t *testing.T) {
	m, _ := testConsole(t)
	m.resize(80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	m = next.(Model)
	assert.Equal(t, "hi", m.input.Value())
}
