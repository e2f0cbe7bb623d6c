package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	l := Noop()
	l.Debug("debug %d", 1)
	l.Info("info %s", "x")
	l.Warn("warn")
	l.Error("error")
}

func TestBufferLoggerCaptures(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("connecting to %s", "panel")
	l.Info("connected")
	l.Warn("slow response")
	l.Error("gave up")

	assert.Len(t, l.Messages, 4)
	assert.Equal(t, "connecting to panel", l.Messages[0].Message)
	assert.True(t, l.HasLevel("debug"))
	assert.True(t, l.HasLevel("error"))
	assert.False(t, l.HasLevel("fatal"))
}

func TestBufferLoggerClear(t *testing.T) {
	l := NewBufferLogger()
	l.Info("one")
	l.Clear()
	assert.Empty(t, l.Messages)
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	buf := NewBufferLogger()
	SetDefault(buf)
	Default().Info("hello")

	assert.Len(t, buf.Messages, 1)
}
