// Package console holds the console log store and the interactive console
// view. The store outlives socket reconnects; the view renders it.
package console

import (
	"regexp"
	"strings"
	"sync"
)

// Entry is one console line. Raw is the wire line as received; Clean has
// terminal control sequences and daemon artifacts removed for display.
type Entry struct {
	Raw   string
	Clean string
}

// ansiPattern matches CSI sequences (colors, cursor movement) and OSC
// sequences (window titles) emitted by game servers.
var ansiPattern = regexp.MustCompile(`\x1b(?:\[[0-9;?]*[ -/]*[@-~]|\][^\x07\x1b]*(?:\x07|\x1b\\))`)

// Clean normalizes a wire line for display: ANSI sequences stripped, the
// daemon's "> " command-echo prefix removed, trailing CR/LF dropped.
func Clean(raw string) string {
	s := ansiPattern.ReplaceAllString(raw, "")
	s = strings.TrimRight(s, "\r\n")
	s = strings.TrimPrefix(s, "> ")
	return s
}

// LogStore is an append-only ordered collection of console entries. It is
// owned by the UI layer and survives session reconnects, so scrollback is
// not lost when the socket is swapped.
type LogStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewLogStore creates an empty store.
func NewLogStore() *LogStore {
	return &LogStore{}
}

// Append adds lines in the given order.
func (s *LogStore) Append(lines ...string) {
	if len(lines) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, raw := range lines {
		s.entries = append(s.entries, Entry{Raw: raw, Clean: Clean(raw)})
	}
}

// Len returns the number of stored entries.
func (s *LogStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Lines returns the cleaned lines in arrival order.
func (s *LogStore) Lines() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clean
	}
	return out
}

// Text returns the cleaned log as one newline-joined document, the shape the
// log upload endpoint expects.
func (s *LogStore) Text() string {
	return strings.Join(s.Lines(), "\n")
}
