package loader_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/loader"
	"github.com/agentstation/snipdeck/pkg/logging"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// fakeSource serves modules from a map. Keys in fail return an error.
type fakeSource struct {
	modules map[snippets.CategoryKey][]snippets.Snippet
	fail    map[snippets.CategoryKey]error
	calls   atomic.Int32
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) LoadCategory(_ context.Context, key snippets.CategoryKey) ([]snippets.Snippet, error) {
	f.calls.Add(1)
	if err, ok := f.fail[key]; ok {
		return nil, err
	}
	list, ok := f.modules[key]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("category", key.String())
	}
	return list, nil
}

func snip(title string, cat snippets.CategoryKey, tags ...string) snippets.Snippet {
	return snippets.Snippet{Title: title, Category: cat, Language: "text", Code: "code of " + title, Tags: tags}
}

func newFake() *fakeSource {
	return &fakeSource{
		modules: map[snippets.CategoryKey][]snippets.Snippet{
			snippets.JavaScript: {snip("Async Loader", snippets.JavaScript), snip("Clipboard", snippets.JavaScript)},
			snippets.React:      {snip("React Component Template", snippets.React, "react", "component")},
			snippets.Python:     {snip("FastAPI", snippets.Python), snip("Pandas", snippets.Python), snip("Async", snippets.Python)},
		},
		fail: map[snippets.CategoryKey]error{},
	}
}

func newLoader(t *testing.T, src loader.Source, opts ...loader.Option) (*loader.Loader, *logging.TestLogger) {
	t.Helper()
	tl := logging.NewTestLogger(t)
	l, err := loader.New(src, append([]loader.Option{loader.WithLogger(tl.Logger)}, opts...)...)
	require.NoError(t, err)
	return l, tl
}

func TestNewRequiresSource(t *testing.T) {
	_, err := loader.New(nil)
	assert.True(t, pkgerrors.IsValidationError(err))

	_, err = loader.New(newFake(), loader.WithRegistry(nil))
	assert.Error(t, err)
}

func TestLoadAllOrderAndIDs(t *testing.T) {
	l, tl := newLoader(t, newFake())

	got := l.LoadAll(context.Background())

	want := []string{"javascript-1", "javascript-2", "react-1", "python-1", "python-2", "python-3"}
	if diff := cmp.Diff(want, snippets.IDs(got)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Async Loader", got[0].Title)
	assert.Equal(t, "React Component Template", got[2].Title)
	require.NoError(t, snippets.ValidateCatalog(nil, got))

	// java has no module and is skipped silently
	assert.False(t, tl.Contains(`"level":"error"`))
	assert.False(t, tl.Contains(`"level":"warn"`))
}

func TestLoadAllReturnsFreshCopies(t *testing.T) {
	src := newFake()
	l, _ := newLoader(t, src)

	first := l.LoadAll(context.Background())
	first[2].Tags[0] = "mutated"
	first[2].Title = "mutated"

	second := l.LoadAll(context.Background())
	assert.Equal(t, "React Component Template", second[2].Title)
	assert.Equal(t, "react", second[2].Tags[0])
	assert.Equal(t, "react", src.modules[snippets.React][0].Tags[0])
}

func TestLoadAllKeepsRefID(t *testing.T) {
	src := newFake()
	react := src.modules[snippets.React][0]
	react.RefID = 1
	src.modules[snippets.React] = []snippets.Snippet{react}
	python := src.modules[snippets.Python]
	python[0].ID = "17"
	l, _ := newLoader(t, src)

	got := l.LoadAll(context.Background())
	assert.Equal(t, "react-1", got[2].ID)
	assert.Equal(t, 1, got[2].RefID)
	assert.Equal(t, "python-1", got[3].ID)
	assert.Equal(t, 17, got[3].RefID)
}

func TestLoadAllFailurePolicy(t *testing.T) {
	boom := errors.New("module exploded")

	t.Run("partial keeps healthy categories", func(t *testing.T) {
		src := newFake()
		src.fail[snippets.React] = boom
		l, tl := newLoader(t, src)

		got := l.LoadAll(context.Background())
		assert.Equal(t, []string{"javascript-1", "javascript-2", "python-1", "python-2", "python-3"}, snippets.IDs(got))
		tl.AssertContains(t, "module exploded")
		tl.AssertContains(t, `"category":"react"`)
	})

	t.Run("all yields empty catalog", func(t *testing.T) {
		src := newFake()
		src.fail[snippets.React] = boom
		l, tl := newLoader(t, src, loader.WithFailurePolicy(loader.FailAll))

		got := l.LoadAll(context.Background())
		assert.NotNil(t, got)
		assert.Empty(t, got)
		tl.AssertContains(t, "returning empty catalog")
	})
}

func TestLoadByCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("concrete category", func(t *testing.T) {
		l, _ := newLoader(t, newFake())
		got := l.LoadByCategory(ctx, snippets.Python)
		assert.Equal(t, []string{"python-1", "python-2", "python-3"}, snippets.IDs(got))
		for _, s := range got {
			assert.Equal(t, snippets.Python, s.Category)
		}
	})

	t.Run("all delegates to LoadAll", func(t *testing.T) {
		l, _ := newLoader(t, newFake())
		assert.Equal(t, snippets.IDs(l.LoadAll(ctx)), snippets.IDs(l.LoadByCategory(ctx, snippets.All)))
	})

	t.Run("unknown key warns", func(t *testing.T) {
		l, tl := newLoader(t, newFake())
		got := l.LoadByCategory(ctx, "rust")
		assert.NotNil(t, got)
		assert.Empty(t, got)
		tl.AssertContains(t, `Category \"rust\" not found`)
	})

	t.Run("declared without module warns", func(t *testing.T) {
		l, tl := newLoader(t, newFake())
		got := l.LoadByCategory(ctx, snippets.Java)
		assert.Empty(t, got)
		tl.AssertContains(t, `"level":"warn"`)
	})

	t.Run("failure logs error", func(t *testing.T) {
		src := newFake()
		src.fail[snippets.Python] = errors.New("broken yaml")
		l, tl := newLoader(t, src)
		assert.Empty(t, l.LoadByCategory(ctx, snippets.Python))
		tl.AssertContains(t, `"level":"error"`)
	})
}

func TestCategoryUnionEqualsLoadAll(t *testing.T) {
	ctx := context.Background()
	l, _ := newLoader(t, newFake())

	var union []snippets.Snippet
	for _, key := range l.Registry().Keys() {
		union = append(union, l.LoadByCategory(ctx, key)...)
	}
	if diff := cmp.Diff(l.LoadAll(ctx), union); diff != "" {
		t.Errorf("union of categories differs from LoadAll (-all +union):\n%s", diff)
	}
}

func TestCountsByCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("partial", func(t *testing.T) {
		src := newFake()
		src.fail[snippets.Python] = errors.New("boom")
		l, _ := newLoader(t, src)

		got := l.CountsByCategory(ctx)
		assert.Equal(t, map[snippets.CategoryKey]int{
			snippets.JavaScript: 2,
			snippets.React:      1,
			snippets.SpringBoot: 0,
			snippets.Java:       0,
			snippets.Svelte:     0,
			snippets.Python:     0,
		}, got)
	})

	t.Run("all", func(t *testing.T) {
		src := newFake()
		src.fail[snippets.Python] = errors.New("boom")
		l, _ := newLoader(t, src, loader.WithFailurePolicy(loader.FailAll))
		assert.Empty(t, l.CountsByCategory(ctx))
	})
}

func TestWithConcurrency(t *testing.T) {
	src := newFake()
	l, _ := newLoader(t, src, loader.WithConcurrency(1))

	got := l.LoadAll(context.Background())
	assert.Len(t, got, 6)
	assert.Equal(t, int32(6), src.calls.Load())
}

func TestStaticSource(t *testing.T) {
	ctx := context.Background()
	list := []snippets.Snippet{
		{ID: "1", Title: "React Component Template", Category: snippets.React, Code: "x"},
		{ID: "2", Title: "Async Loader", Category: snippets.JavaScript, Code: "y"},
		{ID: "3", Title: "Clipboard", Category: snippets.JavaScript, Code: "z"},
	}
	src := loader.NewStaticSource("", list)
	assert.Equal(t, "static", src.Name())

	t.Run("authored ids in array order", func(t *testing.T) {
		l, _ := newLoader(t, src, loader.WithIDMode(loader.IDAuthored))
		got := l.LoadAll(ctx)
		assert.Equal(t, []string{"1", "2", "3"}, snippets.IDs(got))
		assert.Equal(t, 2, got[1].RefID)
	})

	t.Run("empty category is not missing", func(t *testing.T) {
		l, tl := newLoader(t, src, loader.WithIDMode(loader.IDAuthored))
		assert.Empty(t, l.LoadByCategory(ctx, snippets.Java))
		assert.False(t, tl.Contains(`"level":"warn"`))
		assert.Equal(t, 0, l.CountsByCategory(ctx)[snippets.Java])
		assert.Equal(t, 2, l.CountsByCategory(ctx)[snippets.JavaScript])
	})

	t.Run("synthesized ids restart per category", func(t *testing.T) {
		l, _ := newLoader(t, src)
		assert.Equal(t, []string{"react-1", "javascript-1", "javascript-2"}, snippets.IDs(l.LoadAll(ctx)))
	})

	t.Run("source copy is isolated", func(t *testing.T) {
		list[0].Title = "changed"
		l, _ := newLoader(t, src, loader.WithIDMode(loader.IDAuthored))
		assert.Equal(t, "React Component Template", l.LoadAll(ctx)[0].Title)
	})
}

func TestSourceFunc(t *testing.T) {
	src := loader.SourceFunc(func(_ context.Context, key snippets.CategoryKey) ([]snippets.Snippet, error) {
		if key == snippets.Svelte {
			return []snippets.Snippet{snip("Store", snippets.Svelte)}, nil
		}
		return nil, pkgerrors.NewNotFoundError("category", key.String())
	})
	l, _ := newLoader(t, src)
	assert.Equal(t, []string{"svelte-1"}, snippets.IDs(l.LoadAll(context.Background())))
}

func TestParseFailurePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    loader.FailurePolicy
		wantErr bool
	}{
		{in: "", want: loader.FailPartial},
		{in: "partial", want: loader.FailPartial},
		{in: "ALL", want: loader.FailAll},
		{in: "sometimes", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := loader.ParseFailurePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.String(), mustParse(t, got.String()).String())
		})
	}
}

func mustParse(t *testing.T, s string) loader.FailurePolicy {
	t.Helper()
	p, err := loader.ParseFailurePolicy(s)
	require.NoError(t, err)
	return p
}

func TestWithErrorHandler(t *testing.T) {
	boom := errors.New("module exploded")
	src := newFake()
	src.fail[snippets.Python] = boom

	var reported []error
	l, _ := newLoader(t, src, loader.WithErrorHandler(func(err error) {
		reported = append(reported, err)
	}))

	l.LoadAll(context.Background())
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], boom)

	var loadErr *pkgerrors.LoadError
	require.ErrorAs(t, reported[0], &loadErr)
	assert.Equal(t, "python", loadErr.Category)
	assert.Equal(t, "fake", loadErr.Source)

	l.LoadByCategory(context.Background(), snippets.Python)
	assert.Len(t, reported, 2)

	// Missing modules are not failures.
	l.LoadByCategory(context.Background(), snippets.Java)
	assert.Len(t, reported, 2)
}

func TestMisfiledRecordsAreSkipped(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{
		modules: map[snippets.CategoryKey][]snippets.Snippet{
			snippets.React: {
				snip("Hook", snippets.React),
				snip("Stray", snippets.Python),
				snip("Bogus", "bogus"),
				snip("Reserved", snippets.All),
				snip("Unlabelled", ""),
			},
			snippets.Python: {snip("FastAPI", snippets.Python)},
		},
		fail: map[snippets.CategoryKey]error{},
	}

	var reported []error
	l, tl := newLoader(t, src, loader.WithErrorHandler(func(err error) {
		reported = append(reported, err)
	}))

	react := l.LoadByCategory(ctx, snippets.React)
	assert.Equal(t, []string{"react-1", "react-2"}, snippets.IDs(react))
	for _, s := range react {
		assert.Equal(t, snippets.React, s.Category)
	}
	assert.Equal(t, "Unlabelled", react[1].Title)
	require.Len(t, reported, 3)
	for _, err := range reported {
		assert.True(t, pkgerrors.IsValidationError(err), err)
	}
	assert.True(t, tl.Contains("category does not match its module"))
	assert.True(t, tl.Contains("unknown category"))
	assert.True(t, tl.Contains("reserved category"))

	all, counts := l.LoadCatalog(ctx)
	assert.Equal(t, []string{"react-1", "react-2", "python-1"}, snippets.IDs(all))
	for _, s := range all {
		assert.True(t, l.Registry().Has(s.Category), s.Category)
	}
	assert.Equal(t, 2, counts[snippets.React])
	assert.Equal(t, 1, counts[snippets.Python])
}

func TestAuthoredDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	src := loader.NewStaticSource("", []snippets.Snippet{
		{ID: "1", Title: "One", Category: snippets.Python, Code: "a"},
		{ID: "1", Title: "Again", Category: snippets.Python, Code: "b"},
		{ID: "2", Title: "Two", Category: snippets.React, Code: "c"},
		{ID: "3", Title: "Elsewhere", Category: "bogus", Code: "d"},
	})

	var reported []error
	l, tl := newLoader(t, src,
		loader.WithIDMode(loader.IDAuthored),
		loader.WithErrorHandler(func(err error) { reported = append(reported, err) }),
	)

	all := l.LoadAll(ctx)
	assert.Equal(t, []string{"1", "python-2", "2"}, snippets.IDs(all))
	assert.Equal(t, "Again", all[1].Title)
	assert.True(t, tl.Contains("Duplicate snippet id"))
	require.Len(t, reported, 2)

	var verr *pkgerrors.ValidationError
	require.ErrorAs(t, reported[0], &verr)
	assert.Equal(t, "id", verr.Field)

	python := l.LoadByCategory(ctx, snippets.Python)
	assert.Equal(t, []string{"1", "python-2"}, snippets.IDs(python))
}

func TestLoadCatalogCountsMatchList(t *testing.T) {
	// Each call returns one more record, as a source edited between reads would.
	var calls atomic.Int32
	src := loader.SourceFunc(func(_ context.Context, key snippets.CategoryKey) ([]snippets.Snippet, error) {
		if key != snippets.Svelte {
			return nil, nil
		}
		n := int(calls.Add(1))
		list := make([]snippets.Snippet, n)
		for i := range list {
			list[i] = snip("Store", snippets.Svelte)
		}
		return list, nil
	})
	l, _ := newLoader(t, src)

	for range 3 {
		list, counts := l.LoadCatalog(context.Background())
		assert.Equal(t, len(list), counts[snippets.Svelte])
		assert.Equal(t, 0, counts[snippets.Java])
	}
}
