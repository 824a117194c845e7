// Package hub fans out table change notifications to live stream subscribers.
package hub

import (
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/metrics"
)

// EventType defines the kind of change that occurred
type EventType string

const (
	EventItemInserted EventType = "item_inserted"
	EventItemUpdated  EventType = "item_updated"
	EventItemDeleted  EventType = "item_deleted"
)

// Event describes a committed change to a single row
type Event struct {
	Type   EventType `json:"type"`
	Table  string    `json:"table"`
	ItemID int64     `json:"item_id,omitempty"`
}

// Client is a registered listener. Signals coalesce: a client that has not
// drained its pending signal does not receive a second one.
type Client struct {
	id     string
	filter func(Event) bool
	events chan Event
	once   sync.Once
}

// ID returns the client's unique identifier
func (c *Client) ID() string {
	return c.id
}

// Events returns the signal channel. It is closed on Unsubscribe.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Hub manages change listeners
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// New creates a new Hub
func New() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

// Subscribe registers a client receiving every event accepted by filter.
// A nil filter accepts all events.
func (h *Hub) Subscribe(filter func(Event) bool) *Client {
	client := &Client{
		id:     uuid.NewString(),
		filter: filter,
		events: make(chan Event, 1),
	}

	h.mu.Lock()
	h.clients[client] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	metrics.HubClients.Inc()
	log.WithFields(log.Fields{"client": client.id, "total": count}).Debug("hub client subscribed")
	return client
}

// Unsubscribe removes the client and closes its channel. Safe to call twice.
func (h *Hub) Unsubscribe(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
	}
	count := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	client.once.Do(func() { close(client.events) })

	metrics.HubClients.Dec()
	log.WithFields(log.Fields{"client": client.id, "total": count}).Debug("hub client unsubscribed")
}

// Publish delivers event to all matching clients without blocking
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if client.filter != nil && !client.filter(event) {
			continue
		}
		select {
		case client.events <- event:
		default:
			// A signal is already pending; the client re-queries anyway.
		}
	}
}

// ClientCount returns the number of registered clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
