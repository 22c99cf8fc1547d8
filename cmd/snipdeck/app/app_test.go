package app

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/snipdeck"
	"github.com/agentstation/snipdeck/cmd/application"
	"github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/logging"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

var _ application.Application = (*App)(nil)

func newTestApp(t *testing.T, config *Config) *App {
	t.Helper()
	if config == nil {
		config = &Config{FailurePolicy: "partial"}
	}
	a, err := New("v0.0.1", "abc123", "2026-01-01", "test", WithConfig(config), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	return a
}

func TestNewWithOptions(t *testing.T) {
	config := &Config{Format: "json", Source: "/tmp/snippets"}
	a := newTestApp(t, config)

	assert.Equal(t, "v0.0.1", a.Version())
	assert.Equal(t, "abc123", a.Commit())
	assert.Equal(t, "2026-01-01", a.Date())
	assert.Equal(t, "test", a.BuiltBy())
	assert.Same(t, config, a.Config())
	assert.Equal(t, "json", a.OutputFormat())
	assert.Equal(t, "/tmp/snippets", a.SourcePath())
	assert.NotNil(t, a.Logger())
}

func TestClientIsSingleton(t *testing.T) {
	a := newTestApp(t, nil)

	first, err := a.Client()
	require.NoError(t, err)
	second, err := a.Client()
	require.NoError(t, err)
	assert.Same(t, first, second)

	custom, err := a.Client(snipdeck.WithStaticSnippets([]snippets.Snippet{
		{ID: "1", Title: "One", Category: snippets.Python, Code: "pass"},
	}))
	require.NoError(t, err)
	assert.NotSame(t, first, custom)

	list, err := custom.Catalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestClientConcurrentAccess(t *testing.T) {
	a := newTestApp(t, nil)

	const n = 16
	clients := make([]snipdeck.Client, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clients[i], _ = a.Client()
		}()
	}
	wg.Wait()

	for _, c := range clients[1:] {
		assert.Same(t, clients[0], c)
	}
}

func TestShutdownResetsClient(t *testing.T) {
	a := newTestApp(t, nil)

	first, err := a.Client()
	require.NoError(t, err)
	require.NoError(t, a.Shutdown(context.Background()))

	second, err := a.Client()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestWithClient(t *testing.T) {
	c, err := snipdeck.New(snipdeck.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	a, err := New("dev", "", "", "", WithConfig(&Config{}), WithLogger(logging.NewNopLogger()), WithClient(c))
	require.NoError(t, err)

	got, err := a.Client()
	require.NoError(t, err)
	assert.Same(t, c, got)
}

func TestClientInvalidFailurePolicy(t *testing.T) {
	a := newTestApp(t, &Config{FailurePolicy: "sometimes"})

	_, err := a.Client()
	require.Error(t, err)
	var cfgErr *errors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestClientMissingSource(t *testing.T) {
	a := newTestApp(t, &Config{Source: t.TempDir() + "/missing"})

	_, err := a.Client()
	assert.Error(t, err)
}

func TestServerSettings(t *testing.T) {
	a := newTestApp(t, &Config{Server: ServerConfig{Host: "0.0.0.0", Port: 9000, Metrics: true}})

	s := a.ServerSettings()
	require.NotNil(t, s)
	assert.Equal(t, "0.0.0.0", s.Host)
	assert.Equal(t, 9000, s.Port)
	assert.True(t, s.Metrics)
}
