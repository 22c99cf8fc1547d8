package adapters

import (
	"github.com/google/uuid"

	"github.com/agentstation/snipdeck/internal/server/events"
	"github.com/agentstation/snipdeck/internal/server/sse"
)

// SSESubscriber adapts the SSE broadcaster to the Subscriber interface.
type SSESubscriber struct {
	broadcaster *sse.Broadcaster
}

// NewSSESubscriber creates a new SSE subscriber.
func NewSSESubscriber(broadcaster *sse.Broadcaster) *SSESubscriber {
	return &SSESubscriber{broadcaster: broadcaster}
}

// Send delivers an event to all SSE clients. Each event gets a fresh id
// so clients can track Last-Event-ID.
func (s *SSESubscriber) Send(event events.Event) error {
	s.broadcaster.Broadcast(sse.Event{
		Event: string(event.Type),
		ID:    uuid.NewString(),
		Data: map[string]any{
			"timestamp": event.Timestamp,
			"data":      event.Data,
		},
	})
	return nil
}

// Close is a no-op; the broadcaster manages its own lifecycle.
func (s *SSESubscriber) Close() error {
	return nil
}
