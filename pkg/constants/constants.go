// Package constants provides shared constants used throughout the snipdeck codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// LoadTimeout bounds a full catalog load across every category
	LoadTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 2 * time.Minute

	// ShutdownTimeout is how long the HTTP server waits for in-flight requests
	ShutdownTimeout = 10 * time.Second

	// WatchDebounce is how long the file watcher waits for writes to settle
	WatchDebounce = 250 * time.Millisecond
)

// Presentation constants
const (
	// CopyFeedbackDuration is how long a copy outcome stays visible before
	// the control reverts to its idle label
	CopyFeedbackDuration = 2 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxConcurrentLoads is the maximum number of category modules loaded at once
	MaxConcurrentLoads = 8

	// MaxTitleLength is the maximum allowed length for snippet titles
	MaxTitleLength = 256

	// MaxSearchLength is the maximum accepted length of a search term
	MaxSearchLength = 512

	// ChannelBufferSize is the default buffer size for channels
	ChannelBufferSize = 100
)

// Rate limiting constants
const (
	// DefaultRateLimit is the default requests per minute per client
	DefaultRateLimit = 100
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for cached query results
	CacheTTL = 5 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 10 * time.Minute
)

// Path constants
const (
	// DefaultConfigFile is the base name of the configuration file
	DefaultConfigFile = ".snipdeck"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "SNIPDECK"
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"
)
