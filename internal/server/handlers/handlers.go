// Package handlers provides HTTP request handlers for the snipdeck API.
//
// Handlers are organized by domain:
//
//   - snippets.go: snippet queries and lookup
//   - categories.go: category listing with counts
//   - admin.go: reload and statistics
//   - health.go: liveness and readiness
//   - realtime.go: WebSocket and SSE updates
//   - openapi.go: OpenAPI document
package handlers

import (
	"github.com/agentstation/utc"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/snipdeck"
	"github.com/agentstation/snipdeck/internal/server/cache"
	"github.com/agentstation/snipdeck/internal/server/events"
	"github.com/agentstation/snipdeck/internal/server/sse"
	ws "github.com/agentstation/snipdeck/internal/server/websocket"
)

// ReadyFunc reports whether the first catalog snapshot has been loaded.
type ReadyFunc func() bool

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	client         snipdeck.Client
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	ready          ReadyFunc
	startTime      utc.Time
}

// New creates a new Handlers instance. A nil ready func reports ready.
func New(
	client snipdeck.Client,
	cache *cache.Cache,
	broker *events.Broker,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
	ready ReadyFunc,
) *Handlers {
	if ready == nil {
		ready = func() bool { return true }
	}
	return &Handlers{
		client:         client,
		cache:          cache,
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader:       upgrader,
		logger:         logger,
		ready:          ready,
		startTime:      utc.Now(),
	}
}
