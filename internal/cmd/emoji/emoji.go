// Package emoji holds the status symbols printed by CLI commands.
package emoji

// Status symbols.
const (
	Success = "✓"
	Error   = "✗"
	Stop    = "✗"
	Warning = "!"
	Info    = "i"

	// Reload prefixes catalog reload notices from serve --watch.
	Reload = "↻"
)
