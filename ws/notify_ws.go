package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/IT2357/Hotel-Management-sub000/entity"
	"github.com/IT2357/Hotel-Management-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Hub fans order/task events out to connected dashboards over WebSocket.
// It implements services.Notifier; the lifecycle services get it injected
// instead of reaching for a global, so tests can swap in a recorder.
type Hub struct {
	clients    map[string]map[*websocket.Conn]bool // audience -> set of clients
	broadcast  chan outbound
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
}

type subscription struct {
	Conn     *websocket.Conn
	Audience string
}

type outbound struct {
	Audience string `json:"audience"`
	Event    string `json:"event"`
	Payload  any    `json:"payload"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		broadcast:  make(chan outbound, 64),
		register:   make(chan subscription),
		unregister: make(chan subscription),
	}
}

// Run drains register/unregister/broadcast; start it once on its own
// goroutine.
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.Audience] == nil {
				h.clients[sub.Audience] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.Audience][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.Audience][sub.Conn]; ok {
				delete(h.clients[sub.Audience], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[msg.Audience] {
				if err := conn.WriteJSON(msg); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[msg.Audience], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Notify implements services.Notifier. Best effort: when the buffer is full
// the event is dropped and logged, never blocking a state transition.
func (h *Hub) Notify(audience, event string, payload any) {
	select {
	case h.broadcast <- outbound{Audience: audience, Event: event, Payload: payload}:
	default:
		log.Printf("ws notify dropped: %s/%s", audience, event)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws/notifications — audience follows the authenticated role: staff
// and managers watch the kitchen feed, guests their order feed.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	audience := "guest"
	switch utils.CurrentRole(c) {
	case entity.RoleStaff, entity.RoleManager:
		audience = "staff"
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}

	sub := subscription{Conn: conn, Audience: audience}
	h.register <- sub

	// reader loop only detects disconnects; the feed is one-way
	go func() {
		defer func() { h.unregister <- sub }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
