package loader

import (
	"context"

	"github.com/agentstation/snipdeck/pkg/snippets"
)

// Source provides the per-category snippet modules.
//
// LoadCategory returns the records of one category in authored order. A
// source that has no module for key returns an error matching
// errors.ErrCategoryNotFound.
type Source interface {
	Name() string
	LoadCategory(ctx context.Context, key snippets.CategoryKey) ([]snippets.Snippet, error)
}

// Lister is implemented by sources that hold the whole catalog as a single
// flat array. LoadAll preserves that array's order instead of joining
// categories in declaration order.
type Lister interface {
	LoadAll(ctx context.Context) ([]snippets.Snippet, error)
}

// StaticSource is an in-memory flat array of snippets with authored ids.
type StaticSource struct {
	name     string
	snippets []snippets.Snippet
}

// NewStaticSource returns a source over a copy of list.
func NewStaticSource(name string, list []snippets.Snippet) *StaticSource {
	if name == "" {
		name = "static"
	}
	return &StaticSource{name: name, snippets: snippets.CloneAll(list)}
}

// Name implements Source.
func (s *StaticSource) Name() string {
	return s.name
}

// LoadCategory implements Source. A category with no records is empty, not missing.
func (s *StaticSource) LoadCategory(ctx context.Context, key snippets.CategoryKey) ([]snippets.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []snippets.Snippet{}
	for _, sn := range s.snippets {
		if sn.Category == key {
			out = append(out, sn.Clone())
		}
	}
	return out, nil
}

// LoadAll implements Lister.
func (s *StaticSource) LoadAll(ctx context.Context) ([]snippets.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return snippets.CloneAll(s.snippets), nil
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context, key snippets.CategoryKey) ([]snippets.Snippet, error)

// Name implements Source.
func (f SourceFunc) Name() string {
	return "func"
}

// LoadCategory implements Source.
func (f SourceFunc) LoadCategory(ctx context.Context, key snippets.CategoryKey) ([]snippets.Snippet, error) {
	return f(ctx, key)
}
