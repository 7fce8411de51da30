package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"pdf-knowledge-be/internal/dto"
	"pdf-knowledge-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Hub struct {
	// Registered clients map: SessionID -> List of Clients (multi-tab)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast pushes an event to ALL connected clients, on this instance and,
// via Redis, on any other instance.
func (h *Hub) Broadcast(event dto.ChatEvent) {
	data, _ := json.Marshal(event)

	var dead []*Client
	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				dead = append(dead, client)
			}
		}
	}
	h.mu.RUnlock()
	h.dropClients(dead)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"target_session_id": "*", // Wildcard for broadcast
			"message":           data,
		})
		h.rdb.Publish(context.Background(), "cluster_events", payload)
	}
}

// Send pushes an event to every connection of one session.
func (h *Hub) Send(sessionID uuid.UUID, event dto.ChatEvent) {
	data, _ := json.Marshal(event)

	// The lock spans the sends so an unregister cannot close a channel
	// between the snapshot and the send.
	var dead []*Client
	h.mu.RLock()
	for _, client := range h.clients[sessionID] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"session_id": sessionID})
			dead = append(dead, client)
		}
	}
	h.mu.RUnlock()
	h.dropClients(dead)

	// Always publish for multi-instance support
	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"target_session_id": sessionID.String(),
			"message":           data,
		})
		h.rdb.Publish(context.Background(), "cluster_events", payload)
	}
}

// subscribeToRedis relays cluster_events messages to sessions connected to
// this instance. Every instance subscribes; each delivers only to sessions it
// holds locally.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetSessionID string          `json:"target_session_id"`
			Message         json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.TargetSessionID == "*" {
			var dead []*Client
			h.mu.RLock()
			for _, clients := range h.clients {
				for _, client := range clients {
					select {
					case client.Send <- payload.Message:
					default:
						dead = append(dead, client)
					}
				}
			}
			h.mu.RUnlock()
			h.dropClients(dead)
			continue
		}

		sid, err := uuid.Parse(payload.TargetSessionID)
		if err != nil {
			continue
		}

		var dead []*Client
		h.mu.RLock()
		for _, client := range h.clients[sid] {
			select {
			case client.Send <- payload.Message:
			default:
				dead = append(dead, client)
			}
		}
		h.mu.RUnlock()
		h.dropClients(dead)
	}
}

// dropClients unregisters connections whose send buffer overflowed. Must be
// called without holding h.mu; the unregister case closes the channel.
func (h *Hub) dropClients(dead []*Client) {
	for _, client := range dead {
		h.unregister <- client
	}
}
