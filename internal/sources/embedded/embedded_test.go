package embedded_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/snipdeck/internal/sources/embedded"
	pkgerrors "github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/loader"
	"github.com/agentstation/snipdeck/pkg/logging"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

func TestLoadCategory(t *testing.T) {
	ctx := context.Background()
	src := embedded.New()
	assert.Equal(t, "embedded", src.Name())

	tests := []struct {
		key   snippets.CategoryKey
		count int
		first string
	}{
		{key: snippets.JavaScript, count: 6, first: "Async Data Loader with Promise.all"},
		{key: snippets.React, count: 1, first: "React Component Template"},
		{key: snippets.SpringBoot, count: 7, first: "Spring Boot REST Controller"},
		{key: snippets.Svelte, count: 2, first: "Svelte Component with State"},
		{key: snippets.Python, count: 3, first: "Python FastAPI REST Endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			list, err := src.LoadCategory(ctx, tt.key)
			require.NoError(t, err)
			require.Len(t, list, tt.count)
			assert.Equal(t, tt.first, list[0].Title)
			for _, s := range list {
				assert.NoError(t, s.Validate(nil))
			}
		})
	}

	t.Run("java has no module", func(t *testing.T) {
		_, err := src.LoadCategory(ctx, snippets.Java)
		assert.True(t, pkgerrors.IsCategoryNotFound(err))
	})
}

func TestReactCodeIsVerbatim(t *testing.T) {
	list, err := embedded.New().LoadCategory(context.Background(), snippets.React)
	require.NoError(t, err)

	want := strings.Join([]string{
		"function Component() {",
		"  return (",
		`    <div className="p-4">`,
		"      <h1>Hello World</h1>",
		"    </div>",
		"  )",
		"}",
	}, "\n")
	assert.Equal(t, want, list[0].Code)
	assert.Equal(t, 1, list[0].RefID)
	assert.Equal(t, []string{"react", "component"}, list[0].Tags)
}

func TestLoaderOverEmbedded(t *testing.T) {
	ctx := context.Background()
	l, err := loader.New(embedded.New(), loader.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	all := l.LoadAll(ctx)
	require.Len(t, all, 19)
	require.NoError(t, snippets.ValidateCatalog(l.Registry(), all))
	assert.Equal(t, "javascript-1", all[0].ID)
	assert.Equal(t, "react-1", all[6].ID)

	counts := l.CountsByCategory(ctx)
	assert.Equal(t, map[snippets.CategoryKey]int{
		snippets.JavaScript: 6,
		snippets.React:      1,
		snippets.SpringBoot: 7,
		snippets.Java:       0,
		snippets.Svelte:     2,
		snippets.Python:     3,
	}, counts)
}

func TestStatic(t *testing.T) {
	list, err := embedded.Static()
	require.NoError(t, err)
	require.Len(t, list, 19)

	ids := snippets.IDs(list)
	for i, id := range ids {
		assert.Equal(t, i+1, list[i].RefID, id)
	}
	assert.Equal(t, "React Component Template", list[0].Title)
	assert.Equal(t, snippets.Svelte, list[15].Category)
	assert.Equal(t, "javascript", list[15].Language)
}

func TestStaticMatchesModules(t *testing.T) {
	ctx := context.Background()
	static, err := embedded.Static()
	require.NoError(t, err)

	// Every per-category record appears in the static array with identical code.
	byTitle := make(map[string]snippets.Snippet, len(static))
	for _, s := range static {
		byTitle[s.Title] = s
	}
	src := embedded.New()
	for _, key := range snippets.DefaultRegistry().Keys() {
		list, err := src.LoadCategory(ctx, key)
		if pkgerrors.IsCategoryNotFound(err) {
			continue
		}
		require.NoError(t, err)
		for _, s := range list {
			want, ok := byTitle[s.Title]
			require.True(t, ok, s.Title)
			if diff := cmp.Diff(want.Code, s.Code); diff != "" {
				t.Errorf("%s code differs (-static +module):\n%s", s.Title, diff)
			}
		}
	}
}

func TestNewStatic(t *testing.T) {
	src, err := embedded.NewStatic(context.Background())
	require.NoError(t, err)

	l, err := loader.New(src, loader.WithIDMode(loader.IDAuthored), loader.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	all := l.LoadAll(context.Background())
	require.Len(t, all, 19)
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, "19", all[18].ID)
}
