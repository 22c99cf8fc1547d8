// Package loader materializes the snippet catalog from per-category modules.
//
// A Loader never returns an error to its caller. Missing modules contribute
// nothing, failing modules are logged and handled according to the
// FailurePolicy, and every call returns freshly copied records with ids
// recomputed for that call.
//
// Example usage:
//
//	l, err := loader.New(embedded.New())
//	if err != nil {
//	    return err
//	}
//	all := l.LoadAll(ctx)
//	python := l.LoadByCategory(ctx, snippets.Python)
//	counts := l.CountsByCategory(ctx)
package loader

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/logging"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// Loader loads snippets from a Source.
type Loader struct {
	src Source
	cfg config
}

// New creates a Loader over src.
func New(src Source, opts ...Option) (*Loader, error) {
	if src == nil {
		return nil, errors.NewValidationError("source", nil, "source cannot be nil")
	}
	cfg := config{
		registry: snippets.DefaultRegistry(),
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.logger == nil {
		cfg.logger = logging.Default()
	}
	return &Loader{src: src, cfg: cfg}, nil
}

// Registry returns the registry the loader resolves categories against.
func (l *Loader) Registry() *snippets.Registry {
	return l.cfg.registry
}

// Source returns the underlying source.
func (l *Loader) Source() Source {
	return l.src
}

// IDMode returns the configured id mode.
func (l *Loader) IDMode() IDMode {
	return l.cfg.idMode
}

// FailurePolicy returns the configured failure policy.
func (l *Loader) FailurePolicy() FailurePolicy {
	return l.cfg.policy
}

// LoadAll returns every snippet. Categories are joined in registry
// declaration order unless the source is a Lister.
func (l *Loader) LoadAll(ctx context.Context) []snippets.Snippet {
	list, _ := l.LoadCatalog(ctx)
	return list
}

// LoadCatalog returns every snippet together with the per-category counts
// of that same list, so the two always agree. Under FailAll a failure
// yields an empty list and an empty map.
func (l *Loader) LoadCatalog(ctx context.Context) ([]snippets.Snippet, map[snippets.CategoryKey]int) {
	var out []snippets.Snippet
	if lister, ok := l.src.(Lister); ok {
		var listed bool
		if out, listed = l.loadListed(ctx, lister); !listed {
			return []snippets.Snippet{}, map[snippets.CategoryKey]int{}
		}
	} else {
		results := l.loadCategories(ctx, l.cfg.registry.Keys())
		if l.failed(results) {
			return []snippets.Snippet{}, map[snippets.CategoryKey]int{}
		}
		b := l.newBatch()
		out = []snippets.Snippet{}
		for _, r := range results {
			if r.err == nil {
				out = b.addAll(out, r.key, r.snippets)
			}
		}
	}

	l.log().Debug().
		Str("source", l.src.Name()).
		Int("count", len(out)).
		Msg("Loaded catalog")
	return out, l.count(out)
}

// LoadByCategory returns the snippets of one category. All returns LoadAll.
// Unknown categories and load failures yield an empty result.
func (l *Loader) LoadByCategory(ctx context.Context, key snippets.CategoryKey) []snippets.Snippet {
	if key.IsAll() {
		return l.LoadAll(ctx)
	}
	if !l.cfg.registry.Has(key) {
		l.log().Warn().Str("category", key.String()).Msgf("Category %q not found", key)
		return []snippets.Snippet{}
	}

	list, err := l.src.LoadCategory(ctx, key)
	switch {
	case errors.IsCategoryNotFound(err):
		l.log().Warn().Str("category", key.String()).Msgf("Category %q not found", key)
		return []snippets.Snippet{}
	case err != nil:
		l.log().Error().
			Err(err).
			Str("category", key.String()).
			Str("source", l.src.Name()).
			Msgf("Error loading %s snippets", key)
		l.report(errors.WrapLoad(key.String(), l.src.Name(), err))
		return []snippets.Snippet{}
	}
	return l.newBatch().addAll([]snippets.Snippet{}, key, list)
}

// CountsByCategory reports the number of records per concrete category.
// Categories without a module report zero.
func (l *Loader) CountsByCategory(ctx context.Context) map[snippets.CategoryKey]int {
	_, counts := l.LoadCatalog(ctx)
	return counts
}

func (l *Loader) count(list []snippets.Snippet) map[snippets.CategoryKey]int {
	counts := make(map[snippets.CategoryKey]int, l.cfg.registry.Len())
	for _, key := range l.cfg.registry.Keys() {
		counts[key] = 0
	}
	for _, s := range list {
		counts[s.Category]++
	}
	return counts
}

type categoryResult struct {
	key      snippets.CategoryKey
	snippets []snippets.Snippet
	err      error
}

// loadCategories fetches keys concurrently and returns results in key order.
// Missing modules come back as empty results without an error.
func (l *Loader) loadCategories(ctx context.Context, keys []snippets.CategoryKey) []categoryResult {
	results := make([]categoryResult, len(keys))

	var g errgroup.Group
	if l.cfg.concurrency > 0 {
		g.SetLimit(l.cfg.concurrency)
	}
	ctx = logging.WithSource(logging.WithLogger(ctx, l.log()), l.src.Name())
	for i, key := range keys {
		g.Go(func() error {
			list, err := l.src.LoadCategory(logging.WithCategory(ctx, key.String()), key)
			if errors.IsCategoryNotFound(err) {
				l.log().Debug().Str("category", key.String()).Msg("No module for category")
				list, err = nil, nil
			}
			if err != nil {
				err = errors.WrapLoad(key.String(), l.src.Name(), err)
				list = nil
			}
			results[i] = categoryResult{key: key, snippets: list, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// failed logs every failing category and reports whether the aggregate
// must be discarded under the configured policy.
func (l *Loader) failed(results []categoryResult) bool {
	var errs []error
	for _, r := range results {
		if r.err == nil {
			continue
		}
		errs = append(errs, r.err)
		l.report(r.err)
		l.log().Error().
			Err(r.err).
			Str("category", r.key.String()).
			Str("source", l.src.Name()).
			Msgf("Error loading %s snippets", r.key)
	}
	if len(errs) == 0 || l.cfg.policy != FailAll {
		return false
	}
	l.log().Error().
		Err(errors.Join(errs...)).
		Int("failed", len(errs)).
		Msg("Error loading snippets, returning empty catalog")
	return true
}

// loadListed materializes a Lister source. It reports false when the
// listing failed under FailAll.
func (l *Loader) loadListed(ctx context.Context, lister Lister) ([]snippets.Snippet, bool) {
	list, err := lister.LoadAll(ctx)
	if err != nil {
		l.log().Error().Err(err).Str("source", l.src.Name()).Msg("Error loading snippets")
		l.report(errors.WrapLoad(snippets.All.String(), l.src.Name(), err))
		return []snippets.Snippet{}, l.cfg.policy != FailAll
	}

	b := l.newBatch()
	out := make([]snippets.Snippet, 0, len(list))
	for _, s := range list {
		out = b.add(out, s.Category, s)
	}
	return out, true
}

// batch materializes one view. It numbers records per category, drops
// records that do not belong in the view and keeps ids unique.
type batch struct {
	l        *Loader
	counters map[snippets.CategoryKey]int
	seen     map[string]bool
}

func (l *Loader) newBatch() *batch {
	return &batch{
		l:        l,
		counters: make(map[snippets.CategoryKey]int),
		seen:     make(map[string]bool),
	}
}

func (b *batch) addAll(out []snippets.Snippet, key snippets.CategoryKey, list []snippets.Snippet) []snippets.Snippet {
	for _, s := range list {
		out = b.add(out, key, s)
	}
	return out
}

// add appends s, read from the module of key, unless it is rejected.
// A record without a category takes the module's key.
func (b *batch) add(out []snippets.Snippet, key snippets.CategoryKey, s snippets.Snippet) []snippets.Snippet {
	if s.Category == "" {
		s.Category = key
	}
	if reason := b.reject(key, s); reason != "" {
		b.l.log().Warn().
			Str("category", s.Category.String()).
			Str("module", key.String()).
			Str("title", s.Title).
			Msg("Skipping snippet: " + reason)
		b.l.report(errors.NewValidationError("category", s.Category,
			fmt.Sprintf("%s: snippet %q in %s module", reason, s.Title, key)))
		return out
	}

	b.counters[key]++
	s = b.l.assignID(key, b.counters[key], s)
	if b.seen[s.ID] {
		dup := s.ID
		s.ID = SynthesizeID(key, b.counters[key])
		for b.seen[s.ID] {
			b.counters[key]++
			s.ID = SynthesizeID(key, b.counters[key])
		}
		b.l.log().Warn().
			Str("id", dup).
			Str("replacement", s.ID).
			Str("title", s.Title).
			Msg("Duplicate snippet id, synthesized a new one")
		b.l.report(errors.NewValidationError("id", dup,
			fmt.Sprintf("duplicate id %q: snippet %q was given %q", dup, s.Title, s.ID)))
	}
	b.seen[s.ID] = true
	return append(out, s)
}

func (b *batch) reject(key snippets.CategoryKey, s snippets.Snippet) string {
	switch {
	case s.Category == snippets.All:
		return "reserved category"
	case !b.l.cfg.registry.Has(s.Category):
		return "unknown category"
	case s.Category != key:
		return "category does not match its module"
	}
	return ""
}

func (l *Loader) assignID(key snippets.CategoryKey, n int, s snippets.Snippet) snippets.Snippet {
	s = s.Clone()
	if s.RefID == 0 {
		if ref, err := strconv.Atoi(s.ID); err == nil {
			s.RefID = ref
		}
	}

	if l.cfg.idMode == IDAuthored {
		if s.ID == "" && s.RefID != 0 {
			s.ID = strconv.Itoa(s.RefID)
		}
		if s.ID != "" {
			return s
		}
	}
	s.ID = SynthesizeID(key, n)
	return s
}

func (l *Loader) report(err error) {
	if l.cfg.onError != nil {
		l.cfg.onError(err)
	}
}

func (l *Loader) log() *zerolog.Logger {
	return l.cfg.logger
}

// SynthesizeID returns the id of the n-th (1-based) record of a category.
func SynthesizeID(key snippets.CategoryKey, n int) string {
	return fmt.Sprintf("%s-%d", key, n)
}
