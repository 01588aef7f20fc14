package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Operation succeeded
	SymbolFail    = "✗" // Operation failed
	SymbolPending = "○" // Value unavailable
	SymbolNull    = "-" // Failed or unset variable reading
)
