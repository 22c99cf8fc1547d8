// Package events provides a unified event system for real-time catalog updates.
//
// The broker connects the snipdeck client hooks to multiple transports
// (WebSocket, SSE) through a common event pipeline.
package events

import "github.com/agentstation/utc"

// EventType represents the type of catalog event.
type EventType string

// Event types for catalog changes.
const (
	// Catalog events (from client hooks).
	CatalogReloaded EventType = "catalog.reloaded"

	// Snippet events (from the reload diff).
	SnippetAdded   EventType = "snippet.added"
	SnippetUpdated EventType = "snippet.updated"
	SnippetRemoved EventType = "snippet.removed"

	// Client events (from transport layers).
	ClientConnected EventType = "client.connected"
)

// Event represents a catalog event with type, timestamp, and data.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp utc.Time  `json:"timestamp"`
	Data      any       `json:"data"`
}
