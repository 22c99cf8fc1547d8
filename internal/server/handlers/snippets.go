package handlers

import (
	"net/http"

	"github.com/agentstation/snipdeck/internal/server/cache"
	"github.com/agentstation/snipdeck/internal/server/filter"
	"github.com/agentstation/snipdeck/internal/server/response"
	"github.com/agentstation/snipdeck/pkg/logging"
	"github.com/agentstation/snipdeck/pkg/query"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// SnippetList is the payload of GET /api/v1/snippets.
type SnippetList struct {
	Snippets []snippets.Snippet  `json:"snippets"`
	Total    int                  `json:"total"`
	Showing  int                  `json:"showing"`
	Search   string               `json:"search"`
	Category snippets.CategoryKey `json:"category"`
}

// HandleListSnippets handles GET /api/v1/snippets?search=&category=.
// Results keep catalog order; an unknown category answers 400.
func (h *Handlers) HandleListSnippets(w http.ResponseWriter, r *http.Request) {
	f, err := filter.ParseSnippetFilter(r, h.client.Registry())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	key := cache.QueryKey(f)
	if cached, found := h.cache.Get(key); found {
		response.OK(w, cached)
		return
	}

	gen := h.cache.Generation()
	catalog, err := h.client.Catalog(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	result := f.Apply(catalog)
	stats := query.Summarize(catalog, result)
	list := SnippetList{
		Snippets: result,
		Total:    stats.Total,
		Showing:  stats.Showing,
		Search:   f.Search,
		Category: f.Category,
	}

	ctx := logging.WithCategory(r.Context(), f.Category.String())
	logging.FromContext(ctx).Debug().
		Str("search", f.Search).
		Int("showing", stats.Showing).
		Msg("Snippet query")

	h.cache.SetIfCurrent(key, list, gen)
	response.OK(w, list)
}

// HandleGetSnippet handles GET /api/v1/snippets/{id}.
func (h *Handlers) HandleGetSnippet(w http.ResponseWriter, r *http.Request, id string) {
	key := cache.SnippetKey(id)
	if cached, found := h.cache.Get(key); found {
		response.OK(w, cached)
		return
	}

	ctx := logging.WithSnippet(r.Context(), id)
	gen := h.cache.Generation()
	s, err := h.client.Find(ctx, id)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("Snippet lookup failed")
		response.ErrorFromType(w, err)
		return
	}

	h.cache.SetIfCurrent(key, s, gen)
	response.OK(w, s)
}
