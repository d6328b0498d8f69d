// Package events delivers moderation events (submissions and decisions) to
// connected admin dashboards over websockets. Events travel through redis
// pub/sub so every server instance sees decisions made on any of them.
package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/termbridge/backend/internal/cache"
	"github.com/termbridge/backend/internal/models"
)

// Hub maintains the set of connected admin clients and fans events out to
// them.
type Hub struct {
	clients map[uuid.UUID]*Client

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	redis *cache.RedisClient

	mu sync.RWMutex
}

// NewHub creates a new Hub
func NewHub(redis *cache.RedisClient) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client, 1),
		unregister: make(chan *Client, 1),
		redis:      redis,
	}
}

// Run starts the hub loop. It returns when the redis subscription is closed.
func (h *Hub) Run() {
	go h.subscribeToRedis()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.userID] = client
			h.mu.Unlock()
			log.Printf("Moderation feed client connected: %s", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.userID]; ok {
				delete(h.clients, client.userID)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("Moderation feed client disconnected: %s", client.userID)

		case message := <-h.broadcast:
			h.mu.Lock()
			for id, client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop the connection rather than block the hub.
					close(client.send)
					delete(h.clients, id)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish sends an event to all server instances via redis, falling back to
// a local broadcast when redis is unavailable.
func (h *Hub) Publish(event models.ModerationEvent) {
	if h.redis != nil {
		if err := h.redis.PublishModerationEvent(event); err == nil {
			return
		}
	}
	if data, err := json.Marshal(event); err == nil {
		h.broadcast <- data
	}
}

func (h *Hub) subscribeToRedis() {
	if h.redis == nil {
		return
	}
	pubsub := h.redis.SubscribeModerationEvents()
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.broadcast <- []byte(msg.Payload)
	}
}
