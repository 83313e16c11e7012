package websocket

import (
	"context"
	"sync"

	"github.com/anjiri1684/wiki_quiz/logger"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Client struct {
	SessionID string
	Conn      Conn
}

type Message struct {
	SessionID string
	Payload   interface{}
}

// Hub fans session state out to every socket opened by the same browser
// session. All writes happen on the Run goroutine.
type Hub struct {
	log *logger.Logger

	clients   map[string]map[Conn]struct{}
	clientsMu sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan Message
	done       chan struct{}
}

func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		log:        log,
		clients:    make(map[string]map[Conn]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Message, 64),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish queues payload for sessionID. It never blocks; when the queue is
// full the update is dropped and the next one carries the full state anyway.
func (h *Hub) Publish(sessionID string, payload interface{}) {
	select {
	case h.broadcast <- Message{SessionID: sessionID, Payload: payload}:
	case <-h.done:
	default:
		h.log.Warn("websocket broadcast queue full, dropping update", "session_id", sessionID)
	}
}

// ClientCount reports how many sockets are open for sessionID.
func (h *Hub) ClientCount(sessionID string) int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients[sessionID])
}

// Run processes registrations and broadcasts until ctx is done, then closes
// every remaining connection.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clientsMu.Lock()
			conns, ok := h.clients[client.SessionID]
			if !ok {
				conns = make(map[Conn]struct{})
				h.clients[client.SessionID] = conns
			}
			conns[client.Conn] = struct{}{}
			h.clientsMu.Unlock()
			h.log.Debug("websocket client registered", "session_id", client.SessionID)
		case client := <-h.unregister:
			h.remove(client.SessionID, client.Conn)
			h.log.Debug("websocket client unregistered", "session_id", client.SessionID)
		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) deliver(msg Message) {
	h.clientsMu.RLock()
	conns := make([]Conn, 0, len(h.clients[msg.SessionID]))
	for conn := range h.clients[msg.SessionID] {
		conns = append(conns, conn)
	}
	h.clientsMu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(msg.Payload); err != nil {
			h.log.Warn("error sending session state", "session_id", msg.SessionID, "error", err)
			_ = conn.Close()
			h.remove(msg.SessionID, conn)
		}
	}
}

func (h *Hub) remove(sessionID string, conn Conn) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	conns, ok := h.clients[sessionID]
	if !ok {
		return
	}
	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.clients, sessionID)
	}
}

func (h *Hub) shutdown() {
	close(h.done)
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	for id, conns := range h.clients {
		for conn := range conns {
			_ = conn.Close()
		}
		delete(h.clients, id)
	}
}
