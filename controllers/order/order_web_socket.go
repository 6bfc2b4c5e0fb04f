package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/papillonstore/papillon-api/services"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub pushes lifecycle events (new order, status change) to every connected
// dashboard so the notification bell reacts without polling.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub(feed *services.Feed) *Hub {
	h := &Hub{clients: make(map[*websocket.Conn]struct{})}
	events, _ := feed.Subscribe()
	go h.run(events)
	return h
}

func (h *Hub) run(events <-chan services.Event) {
	for ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		h.mu.Lock()
		for conn := range h.clients {
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				conn.Close()
				delete(h.clients, conn)
			}
		}
		h.mu.Unlock()
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// OrderWebSocketHandler upgrades the connection and keeps it registered until
// the client goes away. Inbound messages are discarded; the socket is
// push-only.
func OrderWebSocketHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		defer conn.Close()
		hub.add(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.remove(conn)
				break
			}
		}
	}
}
