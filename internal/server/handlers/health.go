package handlers

import (
	"net/http"

	"github.com/agentstation/snipdeck/internal/server/response"
)

// HandleHealth handles GET /health and GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "snipdeck-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready. It answers 503 until the first
// catalog snapshot has been loaded.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	if !h.ready() {
		response.ServiceUnavailable(w, "Catalog not loaded")
		return
	}

	response.OK(w, map[string]any{
		"status": "ready",
		"cache": map[string]any{
			"items": h.cache.ItemCount(),
		},
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
