// Package filter provides query parameter parsing for the snippet endpoints.
package filter

import (
	"fmt"
	"net/http"

	"github.com/agentstation/snipdeck/pkg/constants"
	"github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/query"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// Query parameter names.
const (
	ParamSearch   = "search"
	ParamCategory = "category"
)

// ParseSnippetFilter extracts the search term and category from the request.
// The search term is passed through untouched; an unknown category is a
// validation error. A nil registry uses the default one.
func ParseSnippetFilter(r *http.Request, reg *snippets.Registry) (query.Filter, error) {
	if reg == nil {
		reg = snippets.DefaultRegistry()
	}
	q := r.URL.Query()

	search := q.Get(ParamSearch)
	if len(search) > constants.MaxSearchLength {
		return query.Filter{}, errors.NewValidationError(ParamSearch, len(search),
			fmt.Sprintf("must be at most %d bytes", constants.MaxSearchLength))
	}

	category, err := reg.Parse(q.Get(ParamCategory))
	if err != nil {
		return query.Filter{}, err
	}

	return query.Filter{Search: search, Category: category}, nil
}
