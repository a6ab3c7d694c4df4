package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"AsmiDesk/entity"
)

// Event represents a live update sent to connected dashboard clients.
type Event struct {
	Type string      `json:"type"` // "new_message", "chat_updated"
	Data interface{} `json:"data"`
}

// Hub maintains the set of active dashboard connections and broadcasts
// conversation events to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastMessage pushes a persisted message to all dashboard clients.
func (h *Hub) BroadcastMessage(msg *entity.Message) {
	if msg == nil {
		return
	}
	h.broadcast <- &Event{
		Type: "new_message",
		Data: msg,
	}
}

// BroadcastChatUpdate notifies dashboards that a chat's mode or assignment
// changed.
func (h *Hub) BroadcastChatUpdate(chat *entity.Chat) {
	if chat == nil {
		return
	}
	h.broadcast <- &Event{
		Type: "chat_updated",
		Data: chat,
	}
}
