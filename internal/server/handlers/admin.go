package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/agentstation/snipdeck/internal/server/response"
)

// HandleReload handles POST /api/v1/reload. The client hooks flush the
// cache and publish the reload event.
func (h *Handlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	if err := h.client.Reload(r.Context()); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	snap, err := h.client.Snapshot(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, map[string]any{
		"status":    "reloaded",
		"total":     len(snap.Snippets),
		"counts":    snap.Counts,
		"source":    snap.Source,
		"loaded_at": snap.LoadedAt,
	})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	snap, err := h.client.Snapshot(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	response.OK(w, map[string]any{
		"runtime": map[string]any{
			"uptime_seconds": int64(time.Since(h.startTime.Time).Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"memory_mb":      memStats.Alloc / 1024 / 1024,
			"memory_sys_mb":  memStats.Sys / 1024 / 1024,
		},
		"catalog": map[string]any{
			"snippets_total":   len(snap.Snippets),
			"categories_total": h.client.Registry().Len(),
			"counts":           snap.Counts,
			"source":           snap.Source,
			"loaded_at":        snap.LoadedAt,
		},
		"events": map[string]any{
			"published_total": h.broker.EventsPublished(),
			"dropped_total":   h.broker.EventsDropped(),
			"queue_depth":     h.broker.QueueDepth(),
		},
		"realtime": map[string]any{
			"websocket_clients": h.wsHub.ClientCount(),
			"sse_clients":       h.sseBroadcaster.ClientCount(),
		},
		"cache": h.cache.GetStats(),
	})
}
