package application

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/snipdeck"
)

// Mock is a configurable Application for command tests.
// Unset funcs fall back to a default client over the embedded catalog,
// a no-op logger and the "table" output format.
type Mock struct {
	ClientFunc       func(opts ...snipdeck.Option) (snipdeck.Client, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string

	VersionValue string
	SourceValue  string
	ServerValue  *ServerSettings

	once   sync.Once
	client snipdeck.Client
	err    error
}

var _ Application = (*Mock)(nil)

// Client implements Application.
func (m *Mock) Client(opts ...snipdeck.Option) (snipdeck.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(opts...)
	}
	if len(opts) > 0 {
		return snipdeck.New(opts...)
	}
	m.once.Do(func() {
		m.client, m.err = snipdeck.New()
	})
	return m.client, m.err
}

// Logger implements Application.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat implements Application.
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// SourcePath implements Application.
func (m *Mock) SourcePath() string { return m.SourceValue }

// ServerSettings implements Application.
func (m *Mock) ServerSettings() *ServerSettings { return m.ServerValue }

// Version implements Application.
func (m *Mock) Version() string {
	if m.VersionValue != "" {
		return m.VersionValue
	}
	return "dev"
}

// Commit implements Application.
func (m *Mock) Commit() string { return "none" }

// Date implements Application.
func (m *Mock) Date() string { return "unknown" }

// BuiltBy implements Application.
func (m *Mock) BuiltBy() string { return "test" }
