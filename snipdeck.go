package snipdeck

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agentstation/snipdeck/internal/sources/embedded"
	"github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/loader"
	"github.com/agentstation/snipdeck/pkg/query"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// Client manages a snippet catalog snapshot and event hooks.
type Client interface {
	// Catalog returns a copy of the full catalog
	Catalog(ctx context.Context) ([]snippets.Snippet, error)

	// Category loads the snippets of one category. All returns the full catalog.
	Category(ctx context.Context, key snippets.CategoryKey) ([]snippets.Snippet, error)

	// Counts returns the number of snippets per concrete category
	Counts(ctx context.Context) (map[snippets.CategoryKey]int, error)

	// Query filters the full catalog
	Query(ctx context.Context, f query.Filter) ([]snippets.Snippet, error)

	// Find returns the snippet with the given id
	Find(ctx context.Context, id string) (snippets.Snippet, error)

	// Snapshot returns the current snapshot, loading it if needed
	Snapshot(ctx context.Context) (Snapshot, error)

	// Registry returns the category registry
	Registry() *snippets.Registry

	// Reload replaces the snapshot and fires hooks
	Reload(ctx context.Context) error

	// OnCatalogLoaded registers a callback for every completed load
	OnCatalogLoaded(CatalogLoadedHook)

	// OnSnippetAdded registers a callback for snippets added by a reload
	OnSnippetAdded(SnippetAddedHook)

	// OnSnippetUpdated registers a callback for snippets changed by a reload
	OnSnippetUpdated(SnippetUpdatedHook)

	// OnSnippetRemoved registers a callback for snippets removed by a reload
	OnSnippetRemoved(SnippetRemovedHook)

	// NewSession creates an independent interactive session
	NewSession() *Session
}

// Snapshot is the result of one full catalog load.
type Snapshot struct {
	Snippets []snippets.Snippet          `json:"snippets" yaml:"snippets"`
	Counts   map[snippets.CategoryKey]int `json:"counts" yaml:"counts"`
	LoadedAt utc.Time                     `json:"loaded_at" yaml:"loaded_at"`
	Source   string                       `json:"source" yaml:"source"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Snippets = snippets.CloneAll(s.Snippets)
	out.Counts = maps.Clone(s.Counts)
	if out.Counts == nil {
		out.Counts = map[snippets.CategoryKey]int{}
	}
	return out
}

// client is the internal implementation of the Client interface
type client struct {
	mu       sync.RWMutex
	snapshot *Snapshot
	config   *config
	loader   *loader.Loader
	logger   *zerolog.Logger

	// Event hooks
	hooks *hooks
}

// New creates a new Client with the given options
func New(opts ...Option) (Client, error) {
	return newClient(opts...)
}

func newClient(opts ...Option) (*client, error) {
	c := &client{
		config: defaultConfig(),
		hooks:  newHooks(),
	}

	if err := c.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}
	c.logger = c.config.logger

	src := c.config.source
	idMode := c.config.idMode
	switch {
	case c.config.static != nil:
		src = loader.NewStaticSource("static", c.config.static)
		idMode = loader.IDAuthored
	case src == nil:
		src = embedded.New()
	}

	loaderOpts := []loader.Option{
		loader.WithRegistry(c.config.registry),
		loader.WithLogger(c.config.logger),
		loader.WithFailurePolicy(c.config.policy),
		loader.WithIDMode(idMode),
	}
	l, err := loader.New(src, append(loaderOpts, c.config.loaderOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("creating loader: %w", err)
	}
	c.loader = l

	return c, nil
}

// Catalog returns a copy of the full catalog
func (c *client) Catalog(ctx context.Context) ([]snippets.Snippet, error) {
	snap, err := c.current(ctx)
	if err != nil {
		return nil, err
	}
	return snippets.CloneAll(snap.Snippets), nil
}

// Category loads the snippets of one category
func (c *client) Category(ctx context.Context, key snippets.CategoryKey) ([]snippets.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if key.IsAll() {
		return c.Catalog(ctx)
	}
	return c.loader.LoadByCategory(ctx, key), nil
}

// Counts returns the number of snippets per concrete category
func (c *client) Counts(ctx context.Context) (map[snippets.CategoryKey]int, error) {
	snap, err := c.current(ctx)
	if err != nil {
		return nil, err
	}
	return maps.Clone(snap.Counts), nil
}

// Query filters the full catalog
func (c *client) Query(ctx context.Context, f query.Filter) ([]snippets.Snippet, error) {
	snap, err := c.current(ctx)
	if err != nil {
		return nil, err
	}
	return snippets.CloneAll(f.Apply(snap.Snippets)), nil
}

// Find returns the snippet with the given id
func (c *client) Find(ctx context.Context, id string) (snippets.Snippet, error) {
	snap, err := c.current(ctx)
	if err != nil {
		return snippets.Snippet{}, err
	}
	s, ok := snippets.FindByID(snap.Snippets, id)
	if !ok {
		return snippets.Snippet{}, errors.NewNotFoundError("snippet", id)
	}
	return s.Clone(), nil
}

// Snapshot returns the current snapshot
func (c *client) Snapshot(ctx context.Context) (Snapshot, error) {
	snap, err := c.current(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return snap.Clone(), nil
}

// Registry returns the category registry
func (c *client) Registry() *snippets.Registry {
	return c.loader.Registry()
}

// Reload replaces the snapshot with a fresh load. Concurrent reloads are
// last-write-wins.
func (c *client) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := c.load(ctx)
	c.setSnapshot(snap)
	return nil
}

// NewSession creates an independent interactive session
func (c *client) NewSession() *Session {
	return newSession(c)
}

// current returns the snapshot, loading it on first use.
func (c *client) current(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	snap := c.snapshot
	c.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	if err := c.Reload(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot, nil
}

func (c *client) load(ctx context.Context) *Snapshot {
	list, counts := c.loader.LoadCatalog(ctx)
	snap := &Snapshot{
		Snippets: list,
		Counts:   counts,
		LoadedAt: utc.Now(),
		Source:   c.loader.Source().Name(),
	}
	c.logger.Debug().
		Str("source", snap.Source).
		Int("snippets", len(list)).
		Msg("Catalog snapshot loaded")
	return snap
}

// setSnapshot updates the snapshot and triggers appropriate event hooks
func (c *client) setSnapshot(snap *Snapshot) {
	c.mu.Lock()
	old := c.snapshot
	c.snapshot = snap
	c.mu.Unlock()

	var oldList []snippets.Snippet
	if old != nil {
		oldList = old.Snippets
	}
	c.hooks.triggerCatalogUpdate(oldList, snap.Snippets)
	c.hooks.triggerCatalogLoaded(snap.Clone())
}

// isStatic reports whether the client serves the single-array variant.
func (c *client) isStatic() bool {
	_, ok := c.loader.Source().(loader.Lister)
	return ok
}
