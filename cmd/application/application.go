// Package application provides the application interface for snipdeck commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            client, err := app.Client()
//	            if err != nil {
//	                return err
//	            }
//	            list, err := client.Catalog(cmd.Context())
//	            // ... use list
//	            return err
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    ClientFunc: func(...snipdeck.Option) (snipdeck.Client, error) {
//	        return snipdeck.New(snipdeck.WithStaticSnippets(fixture))
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/snipdeck"
)

// Application provides the application interface that commands need.
// The App struct from cmd/snipdeck/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Client returns the snipdeck client.
	// When called without options, returns the default cached instance (lazy-initialized, thread-safe).
	// When called with options, creates a new instance with custom configuration (no caching).
	Client(opts ...snipdeck.Option) (snipdeck.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, markdown).
	OutputFormat() string

	// SourcePath returns the configured catalog path, or "" for the embedded catalog.
	SourcePath() string

	// ServerSettings returns the configured serve defaults, or nil when none
	// are configured. Explicit serve flags take precedence.
	ServerSettings() *ServerSettings

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

// ServerSettings holds the serve command settings from the config file and
// environment (server.* keys).
type ServerSettings struct {
	Host        string
	Port        int
	Prefix      string
	CacheTTL    time.Duration
	RateLimit   int
	CORSOrigins []string
	Metrics     bool
}
