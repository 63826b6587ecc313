package realtime

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWS registers the connection with the hub and pumps ride events to it
// until the peer goes away. Inbound frames are discarded.
func ServeWS(h *Hub) func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		client := &Client{ID: uuid.NewString(), Send: make(chan []byte, 64)}
		h.RegisterClient(client)
		defer h.UnregisterClient(client)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case msg, ok := <-client.Send:
				if !ok {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}
}
