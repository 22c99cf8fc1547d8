package adapters

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/snipdeck/internal/server/events"
	"github.com/agentstation/snipdeck/internal/server/sse"
	ws "github.com/agentstation/snipdeck/internal/server/websocket"
)

func TestSSESubscriber(t *testing.T) {
	logger := zerolog.Nop()
	broadcaster := sse.NewBroadcaster(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go broadcaster.Run(ctx)

	srv := httptest.NewServer(broadcaster)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	reader := bufio.NewReader(resp.Body)

	// connected event: event, data, blank line
	for range 3 {
		_, err := reader.ReadString('\n')
		require.NoError(t, err)
	}

	sub := NewSSESubscriber(broadcaster)
	require.NoError(t, sub.Send(events.Event{
		Type:      events.SnippetRemoved,
		Timestamp: utc.Now(),
		Data:      map[string]any{"id": "python-3"},
	}))

	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: snippet.removed\n", line)

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, "id: "))
	assert.Len(t, strings.TrimSpace(strings.TrimPrefix(line, "id: ")), 36)

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, `"data":{"id":"python-3"}`)

	assert.NoError(t, sub.Close())
	assert.NoError(t, sub.Close())
}

func TestWebSocketSubscriber(t *testing.T) {
	logger := zerolog.Nop()
	hub := ws.NewHub(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := ws.NewClient("adapter", hub, nil)
	hub.Register(client)
	defer hub.Unregister(client)

	// Five events fit in the client buffer, so it stays connected.
	sub := NewWebSocketSubscriber(hub)
	for _, typ := range []events.EventType{
		events.CatalogReloaded,
		events.SnippetAdded,
		events.SnippetUpdated,
		events.SnippetRemoved,
		events.ClientConnected,
	} {
		require.NoError(t, sub.Send(events.Event{Type: typ, Timestamp: utc.Now()}))
	}

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, hub.ClientCount())
	assert.NoError(t, sub.Close())
}

func TestSubscribersImplementInterface(t *testing.T) {
	var _ events.Subscriber = (*SSESubscriber)(nil)
	var _ events.Subscriber = (*WebSocketSubscriber)(nil)
}
