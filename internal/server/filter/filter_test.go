package filter

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/snipdeck/pkg/constants"
	"github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/query"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

func TestParseSnippetFilter(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected query.Filter
	}{
		{"empty query", "", query.Filter{Category: snippets.All}},
		{"search only", "search=component", query.Filter{Search: "component", Category: snippets.All}},
		{"search keeps case and spaces", "search=" + url.QueryEscape(" React "), query.Filter{Search: " React ", Category: snippets.All}},
		{"category", "category=python", query.Filter{Category: snippets.Python}},
		{"explicit all", "category=all", query.Filter{Category: snippets.All}},
		{"declared without module", "category=java", query.Filter{Category: snippets.Java}},
		{"both", "search=hook&category=react", query.Filter{Search: "hook", Category: snippets.React}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/snippets?"+tt.query, nil)
			got, err := ParseSnippetFilter(r, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseSnippetFilter_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"unknown category", "category=rust"},
		{"category is case-sensitive", "category=Python"},
		{"search too long", "search=" + strings.Repeat("a", constants.MaxSearchLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/snippets?"+tt.query, nil)
			_, err := ParseSnippetFilter(r, nil)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestParseSnippetFilter_CustomRegistry(t *testing.T) {
	reg, err := snippets.NewRegistry(snippets.Category{Key: "go", Label: "Go"})
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/api/v1/snippets?category=go", nil)
	got, err := ParseSnippetFilter(r, reg)
	require.NoError(t, err)
	assert.Equal(t, snippets.CategoryKey("go"), got.Category)

	r = httptest.NewRequest("GET", "/api/v1/snippets?category=python", nil)
	_, err = ParseSnippetFilter(r, reg)
	assert.True(t, errors.IsValidationError(err))
}
