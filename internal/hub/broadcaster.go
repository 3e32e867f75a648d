package hub

import (
	"maps"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// BufferSize is the buffer size of each client's outbound channel
	BufferSize = 16

	// DefaultSendTimeout bounds how long a send to a slow client may block
	DefaultSendTimeout = time.Second
)

// Message is one outbound event
type Message struct {
	Event string `json:"type"`
	Data  any    `json:"data,omitempty"`
}

// Client is one connection's outbound queue. The transport drains Send
type Client struct {
	Send chan Message

	room     string
	playerID string
}

// NewClient creates an unbound client
func NewClient() *Client {
	return &Client{Send: make(chan Message, BufferSize)}
}

// Hub tracks which clients belong to which room
type Hub struct {
	mu          sync.RWMutex
	rooms       map[string]map[*Client]string // room -> client -> playerID
	log         *zap.Logger
	sendTimeout time.Duration
}

// New creates an empty hub
func New(log *zap.Logger) *Hub {
	return &Hub{
		rooms:       make(map[string]map[*Client]string),
		log:         log,
		sendTimeout: DefaultSendTimeout,
	}
}

// Join binds a client to a room as playerID, leaving any previous room
func (h *Hub) Join(room, playerID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(c)

	clients, ok := h.rooms[room]
	if !ok {
		clients = make(map[*Client]string)
		h.rooms[room] = clients
	}
	dup := 0
	for _, pid := range clients {
		if pid == playerID {
			dup++
		}
	}
	if dup > 0 {
		h.log.Warn("player opened additional connection",
			zap.String("room", room), zap.String("player", playerID), zap.Int("existing", dup))
	}
	clients[c] = playerID
	c.room = room
	c.playerID = playerID
}

// Leave unbinds a client and returns the room and player it was bound to
func (h *Hub) Leave(c *Client) (room, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, playerID = c.room, c.playerID
	h.removeLocked(c)
	return room, playerID
}

// Binding returns the room and player a client is bound to
func (h *Hub) Binding(c *Client) (room, playerID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return c.room, c.playerID
}

// IsConnected reports whether the player has at least one client in the room
func (h *Hub) IsConnected(room, playerID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, pid := range h.rooms[room] {
		if pid == playerID {
			return true
		}
	}
	return false
}

// ClientCount returns the number of clients bound to a room
func (h *Hub) ClientCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// CloseRoom notifies and unbinds every client of a room
func (h *Hub) CloseRoom(room string) {
	h.Broadcast(room, EventRoomClosed, map[string]string{"roomCode": room})

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.rooms[room] {
		c.room, c.playerID = "", ""
	}
	delete(h.rooms, room)
}

// Send queues a message for a single client
func (h *Hub) Send(c *Client, event string, data any) bool {
	return h.deliver(c, Message{Event: event, Data: data})
}

// Broadcast sends the same message to every client of a room
func (h *Hub) Broadcast(room, event string, data any) {
	// Collect all client channels while holding the lock
	clients := h.snapshot(room)

	msg := Message{Event: event, Data: data}
	sent := 0
	for c := range clients {
		if h.deliver(c, msg) {
			sent++
		}
	}
	h.log.Debug("broadcast", zap.String("room", room), zap.String("event", event),
		zap.Int("sent", sent), zap.Int("clients", len(clients)))
}

// BroadcastPersonalized renders a message per player and sends it to each
// client of the room. render runs without the hub lock held, so it may take
// the room lock, but the caller must not hold the room's write lock
func (h *Hub) BroadcastPersonalized(room, event string, render func(playerID string) any) {
	clients := h.snapshot(room)

	rendered := make(map[string]any)
	for c, playerID := range clients {
		data, ok := rendered[playerID]
		if !ok {
			data = render(playerID)
			rendered[playerID] = data
		}
		h.deliver(c, Message{Event: event, Data: data})
	}
}

// SendToPlayer sends a message to every client of one player in a room and
// returns how many clients received it
func (h *Hub) SendToPlayer(room, playerID, event string, data any) int {
	clients := h.snapshot(room)
	msg := Message{Event: event, Data: data}
	sent := 0
	for c, pid := range clients {
		if pid != playerID {
			continue
		}
		if h.deliver(c, msg) {
			sent++
		}
	}
	return sent
}

func (h *Hub) snapshot(room string) map[*Client]string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return maps.Clone(h.rooms[room])
}

// deliver sends WITHOUT holding the lock, giving up on slow clients
func (h *Hub) deliver(c *Client, msg Message) bool {
	timer := time.NewTimer(h.sendTimeout)
	defer timer.Stop()
	select {
	case c.Send <- msg:
		return true
	case <-timer.C:
		h.log.Warn("send timeout", zap.String("event", msg.Event))
		return false
	}
}

func (h *Hub) removeLocked(c *Client) {
	if c.room == "" {
		return
	}
	if clients, ok := h.rooms[c.room]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, c.room)
		}
	}
	c.room, c.playerID = "", ""
}
