package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Event is what gets pushed to open dashboards when an order changes.
type Event struct {
	Action    string `json:"action"` // "order_synced", "status_changed", "order_updated"
	OrderID   string `json:"orderId"`
	Status    string `json:"status,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		done:       make(chan struct{}),
	}
	setDefault(h)
	return h
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.Send <- data:
				default:
					close(c.Send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				close(c.Send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop closes every client connection and ends Run.
func (h *Hub) Stop() {
	close(h.done)
	clearDefault(h)
}

// Broadcast fans an event out to every connected client. Slow clients are
// dropped rather than blocking the hub.
func (h *Hub) Broadcast(e Event) {
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().Unix()
	}
	data, err := json.Marshal(e)
	if err != nil {
		log.Printf("live: failed to marshal event: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}

// Default hub, installed by NewHub so request handlers can publish without
// threading the hub through every package.
var (
	defaultMu  sync.RWMutex
	defaultHub *Hub
)

func setDefault(h *Hub) {
	defaultMu.Lock()
	defaultHub = h
	defaultMu.Unlock()
}

func clearDefault(h *Hub) {
	defaultMu.Lock()
	if defaultHub == h {
		defaultHub = nil
	}
	defaultMu.Unlock()
}

// Publish sends an event through the default hub; a no-op when no hub runs
// (tests, one-off tools).
func Publish(e Event) {
	defaultMu.RLock()
	h := defaultHub
	defaultMu.RUnlock()
	if h != nil {
		h.Broadcast(e)
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocketHandler upgrades the connection and keeps it fed from the hub.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("live upgrade:", err)
			return
		}
		client := &Client{
			Conn: conn,
			Send: make(chan []byte, 64),
		}

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// The feed is one-way; reads only serve to detect the close.
func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
