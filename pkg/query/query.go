// Package query filters a snippet catalog by free-text search and category.
//
// Filtering is pure: the input catalog is never modified, the result keeps
// input order, and no sorting, deduplication or pagination is applied.
package query

import (
	"net/url"
	"strings"

	"github.com/agentstation/snipdeck/pkg/snippets"
)

// Filter contains the search term and category selection for a query.
type Filter struct {
	// Search is matched case-insensitively against title, tags and code.
	Search string `json:"search,omitempty" yaml:"search,omitempty"`

	// Category restricts results to one category. Empty is treated as All.
	Category snippets.CategoryKey `json:"category,omitempty" yaml:"category,omitempty"`
}

// Apply returns the snippets of catalog that match the filter.
func (f Filter) Apply(catalog []snippets.Snippet) []snippets.Snippet {
	result := make([]snippets.Snippet, 0, len(catalog))
	term := strings.ToLower(f.Search)
	for _, s := range catalog {
		if !MatchesCategory(s, f.Category) {
			continue
		}
		if !matchesLowerTerm(s, term) {
			continue
		}
		result = append(result, s)
	}
	return result
}

// IsEmpty reports whether the filter selects every snippet.
func (f Filter) IsEmpty() bool {
	return f.Search == "" && f.Category.IsAll()
}

// Normalize maps an empty category to All.
func (f Filter) Normalize() Filter {
	if f.Category == "" {
		f.Category = snippets.All
	}
	return f
}

// String returns a stable form of the filter, usable as a cache key.
func (f Filter) String() string {
	f = f.Normalize()
	return "category=" + url.QueryEscape(string(f.Category)) + "&search=" + url.QueryEscape(f.Search)
}

// Apply filters catalog by search term and category.
func Apply(catalog []snippets.Snippet, search string, category snippets.CategoryKey) []snippets.Snippet {
	return Filter{Search: search, Category: category}.Apply(catalog)
}

// MatchesSearch reports whether term occurs in the title, in any tag, or in
// the code of s, ignoring case. An empty term matches everything.
func MatchesSearch(s snippets.Snippet, term string) bool {
	return matchesLowerTerm(s, strings.ToLower(term))
}

// MatchesCategory reports whether s belongs to category. All and empty match
// everything; otherwise the comparison is exact and case-sensitive.
func MatchesCategory(s snippets.Snippet, category snippets.CategoryKey) bool {
	if category.IsAll() {
		return true
	}
	return s.Category == category
}

func matchesLowerTerm(s snippets.Snippet, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(s.Title), term) {
		return true
	}
	for _, tag := range s.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(s.Code), term)
}
