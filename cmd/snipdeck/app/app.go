// Package app provides the application context and dependency management
// for the snipdeck CLI. It centralizes configuration, logging and the
// lazily built snipdeck client.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/snipdeck"
	"github.com/agentstation/snipdeck/cmd/application"
	"github.com/agentstation/snipdeck/internal/sources/files"
	"github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/loader"
)

// App represents the snipdeck application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client snipdeck.Client
}

// New creates a new App instance with the given version information.
// The app is initialized from LoadConfig unless WithConfig is given.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		config, err := LoadConfig("")
		if err != nil {
			return nil, errors.WrapResource("load", "config", "", err)
		}
		app.config = config
	}

	if app.logger == nil {
		logger := NewLogger(app.config)
		app.logger = &logger
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// SourcePath returns the configured catalog path.
func (a *App) SourcePath() string {
	return a.config.Source
}

// ServerSettings returns the server.* configuration.
func (a *App) ServerSettings() *application.ServerSettings {
	sc := a.config.Server
	return &application.ServerSettings{
		Host:        sc.Host,
		Port:        sc.Port,
		Prefix:      sc.Prefix,
		CacheTTL:    sc.CacheTTL,
		RateLimit:   sc.RateLimit,
		CORSOrigins: sc.CORSOrigins,
		Metrics:     sc.Metrics,
	}
}

// Client returns the snipdeck client. Without options the shared instance is
// created lazily and cached; with options a fresh client is built on top of
// the configured ones.
func (a *App) Client(opts ...snipdeck.Option) (snipdeck.Client, error) {
	if len(opts) > 0 {
		base, err := a.clientOptions()
		if err != nil {
			return nil, err
		}
		c, err := snipdeck.New(append(base, opts...)...)
		if err != nil {
			return nil, errors.WrapResource("create", "client", "with custom options", err)
		}
		return c, nil
	}

	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	base, err := a.clientOptions()
	if err != nil {
		return nil, err
	}
	c, err := snipdeck.New(base...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}
	a.client = c
	return c, nil
}

// Shutdown releases the cached client.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.client = nil
	return nil
}

// clientOptions constructs client options from the app configuration.
func (a *App) clientOptions() ([]snipdeck.Option, error) {
	opts := []snipdeck.Option{snipdeck.WithLogger(a.logger)}

	if a.config.Source != "" {
		src, mode, err := files.Open(a.config.Source)
		if err != nil {
			return nil, err
		}
		opts = append(opts, snipdeck.WithSource(src), snipdeck.WithIDMode(mode))
	}

	if a.config.FailurePolicy != "" {
		policy, err := loader.ParseFailurePolicy(a.config.FailurePolicy)
		if err != nil {
			return nil, errors.NewConfigError("failure_policy", err.Error(), err)
		}
		opts = append(opts, snipdeck.WithFailurePolicy(policy))
	}

	if a.config.CopyFeedback > 0 {
		opts = append(opts, snipdeck.WithCopyFeedback(a.config.CopyFeedback))
	}

	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a prebuilt client (useful for testing).
func WithClient(c snipdeck.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
