package handlers

import (
	"net/http"

	"github.com/agentstation/snipdeck/internal/server/response"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// CategoryInfo is one entry of GET /api/v1/categories.
type CategoryInfo struct {
	Key   snippets.CategoryKey `json:"key"`
	Label string               `json:"label"`
	Count int                  `json:"count"`
}

// HandleListCategories handles GET /api/v1/categories. The pseudo category
// all comes first with the catalog size, followed by the declared categories
// in declaration order.
func (h *Handlers) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	snap, err := h.client.Snapshot(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	reg := h.client.Registry()
	allLabel, _ := reg.Label(snippets.All)
	out := make([]CategoryInfo, 0, reg.Len()+1)
	out = append(out, CategoryInfo{
		Key:   snippets.All,
		Label: allLabel,
		Count: len(snap.Snippets),
	})
	for _, c := range reg.Categories() {
		out = append(out, CategoryInfo{
			Key:   c.Key,
			Label: c.Label,
			Count: snap.Counts[c.Key],
		})
	}

	response.OK(w, out)
}
