package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Operation completed
	SymbolFail     = "✗" // Operation failed
	SymbolPending  = "○" // Not yet started
	SymbolProgress = "◐" // In progress
	SymbolOnline   = "●" // Server online
	SymbolOffline  = "◌" // Server offline
)

// StateSymbol maps a server power state string to its indicator symbol.
func StateSymbol(state string) string {
	switch state {
	case "running":
		return SymbolOnline
	case "starting", "stopping":
		return SymbolProgress
	case "offline":
		return SymbolOffline
	default:
		return SymbolPending
	}
}
