package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrConfig, "Config file not found", "Run 'pterodash init' first")

	assert.Equal(t, ErrConfig, err.Code)
	assert.Equal(t, "Config file not found", err.Message)
	assert.Equal(t, "Run 'pterodash init' first", err.Suggestion)
	assert.Nil(t, err.Cause)
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "message only",
			err:      New(ErrAPI, "Panel request failed", ""),
			contains: []string{"✗ Panel request failed"},
		},
		{
			name:     "with suggestion",
			err:      New(ErrConfig, "No API key configured", "Set panel.api_key in config"),
			contains: []string{"✗ No API key configured", "Set panel.api_key in config"},
		},
		{
			name:     "with cause",
			err:      Wrap(fmt.Errorf("connection refused"), "Cannot reach panel"),
			contains: []string{"✗ Cannot reach panel", "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				assert.Contains(t, msg, want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := WrapWithCode(cause, ErrSocket, "Socket closed", "")

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestIsCode(t *testing.T) {
	err := New(ErrCommand, "Not connected", "")

	assert.True(t, IsCode(err, ErrCommand))
	assert.False(t, IsCode(err, ErrSocket))
	assert.False(t, IsCode(nil, ErrCommand))
	assert.False(t, IsCode(errors.New("plain"), ErrCommand))
}

func TestWrapDefaultsToAPI(t *testing.T) {
	err := Wrap(errors.New("timeout"), "Request failed")
	require.NotNil(t, err)
	assert.Equal(t, ErrAPI, err.Code)
}
