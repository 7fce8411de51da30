package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"pdf-knowledge-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func registerTestClient(t *testing.T, hub *Hub, sid uuid.UUID, buffer int) *Client {
	t.Helper()
	client := &Client{Hub: hub, SessionID: sid, Send: make(chan []byte, buffer)}
	hub.register <- client

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[sid]) == 1
	}, time.Second, 5*time.Millisecond)

	return client
}

func TestHubSendDeliversToSession(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	sid := uuid.New()
	client := registerTestClient(t, hub, sid, 4)

	hub.Send(sid, dto.ChatEvent{Event: "agent_response", Data: "hello"})

	select {
	case raw := <-client.Send:
		var event dto.ChatEvent
		require.NoError(t, json.Unmarshal(raw, &event))
		assert.Equal(t, "agent_response", event.Event)
		assert.Equal(t, "hello", event.Data)
	case <-time.After(time.Second):
		t.Fatal("no frame delivered to the session's client")
	}

	// Other sessions see nothing.
	hub.Send(uuid.New(), dto.ChatEvent{Event: "agent_response", Data: "misdirected"})
	assert.Empty(t, client.Send)
}

func TestHubSendDropsSlowClient(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	sid := uuid.New()
	// Unbuffered channel with no reader: the first send overflows.
	client := registerTestClient(t, hub, sid, 0)

	hub.Send(sid, dto.ChatEvent{Event: "agent_response", Data: "overflow"})

	// The hub unregisters the client and closes its channel.
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.clients[sid]
		return !ok
	}, time.Second, 5*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open, "dropped client's channel must be closed")
}

func TestHubBroadcastReachesEverySession(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	first := registerTestClient(t, hub, uuid.New(), 4)
	second := registerTestClient(t, hub, uuid.New(), 4)

	hub.Broadcast(dto.ChatEvent{Event: "notification", Data: "Topic 'x' is now available in memory."})

	for _, client := range []*Client{first, second} {
		select {
		case raw := <-client.Send:
			var event dto.ChatEvent
			require.NoError(t, json.Unmarshal(raw, &event))
			assert.Equal(t, "notification", event.Event)
		case <-time.After(time.Second):
			t.Fatal("broadcast missed a client")
		}
	}
}
