// Package websocket pushes item-change events to open admin dashboards so
// every client's view of a ranking converges after any mutation.
package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/mart/ranking-admin/internal/domain"
)

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop gracefully shuts down the hub and waits for Run() to exit.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

type itemsChangedEvent struct {
	Type      string                `json:"type"`
	RankingID string                `json:"rankingId"`
	Items     []*domain.RankingItem `json:"items"`
}

// BroadcastItemsChanged fans the authoritative item list out to every client
// subscribed to the ranking. Slow consumers are dropped rather than allowed
// to block the sender.
func (h *Hub) BroadcastItemsChanged(rankingID string, items []*domain.RankingItem) {
	data, err := json.Marshal(itemsChangedEvent{
		Type:      "items_changed",
		RankingID: rankingID,
		Items:     items,
	})
	if err != nil {
		log.Printf("ERROR [hub.BroadcastItemsChanged] marshal failed: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if !client.SubscribedTo(rankingID) {
			continue
		}
		select {
		case client.send <- data:
		default:
			log.Printf("WARN [hub.BroadcastItemsChanged] dropping slow client")
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
