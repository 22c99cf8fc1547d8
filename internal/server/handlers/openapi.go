package handlers

import (
	"net/http"

	"github.com/agentstation/snipdeck/internal/embedded/openapi"
	"github.com/agentstation/snipdeck/internal/server/response"
)

// HandleOpenAPIJSON serves the OpenAPI document in JSON format.
func (h *Handlers) HandleOpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	data, err := openapi.SpecJSON()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to convert OpenAPI document")
		response.InternalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

// HandleOpenAPIYAML serves the OpenAPI document in YAML format.
func (h *Handlers) HandleOpenAPIYAML(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(openapi.SpecYAML)
}
