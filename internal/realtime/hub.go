package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/henokhm/ride-hailing-bot/internal/models"
)

// RideEvent is pushed to every connected dispatch client when a ride changes.
type RideEvent struct {
	Type     string            `json:"type"` // status_changed | driver_assigned
	RideID   int64             `json:"ride_id"`
	Status   models.RideStatus `json:"status"`
	DriverID int64             `json:"driver_id"`
}

type Client struct {
	ID   string
	Send chan []byte
}

type Hub struct {
	clients    map[string]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.register <- client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

func (h *Hub) BroadcastEvent(ev RideEvent) {
	b, err := json.Marshal(ev)
	if err != nil {
		log.Printf("marshaling ride event: %v", err)
		return
	}
	h.broadcast <- b
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("dispatch client connected: %s", client.ID)

		case client := <-h.unregister:
			h.mu.Lock()
			if old, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(old.Send)
				log.Printf("dispatch client disconnected: %s", client.ID)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for id, client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// slow client, drop it
					close(client.Send)
					delete(h.clients, id)
				}
			}
			h.mu.Unlock()
		}
	}
}
