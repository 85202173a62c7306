package notify

import (
	"encoding/json"
	"log"
	"sync"

	"needwise/models"

	"github.com/gorilla/websocket"
)

// Client is one websocket subscriber. A user may have several open tabs;
// each gets its own client in the same room.
type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	UserID string
}

type broadcastMsg struct {
	UserID string
	Data   []byte
}

// Hub fans notification events out to each user's connected clients. All
// room mutation happens inside Run's select loop.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	once       sync.Once
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			if h.rooms[c.UserID] == nil {
				h.rooms[c.UserID] = make(map[*Client]bool)
			}
			h.rooms[c.UserID][c] = true

		case c := <-h.unregister:
			if conns := h.rooms[c.UserID]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}

		case m := <-h.broadcast:
			for c := range h.rooms[m.UserID] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.UserID], c)
				}
			}

		case <-h.done:
			for user, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
				delete(h.rooms, user)
			}
			return
		}
	}
}

// Stop shuts the hub down and closes every client channel. Safe to call
// more than once.
func (h *Hub) Stop() {
	h.once.Do(func() { close(h.done) })
}

// event is what subscribers receive: an added notification or a dismissal.
type event struct {
	Action       string               `json:"action"` // "add" or "dismiss"
	Notification *models.Notification `json:"notification,omitempty"`
	ID           string               `json:"id,omitempty"`
}

// BroadcastAdd pushes a freshly added notification to the user's clients.
// A nil hub drops the event, so the bus works without live push.
func (h *Hub) BroadcastAdd(n models.Notification) {
	if h == nil {
		return
	}
	h.send(n.UserID, event{Action: "add", Notification: &n})
}

// BroadcastDismiss tells the user's clients a notification is gone.
func (h *Hub) BroadcastDismiss(userID, id string) {
	if h == nil {
		return
	}
	h.send(userID, event{Action: "dismiss", ID: id})
}

func (h *Hub) send(userID string, ev event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Println("notify hub marshal:", err)
		return
	}
	select {
	case h.broadcast <- broadcastMsg{UserID: userID, Data: data}:
	case <-h.done:
	}
}

// Register adds a client to its user's room.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister removes a client; its Send channel is closed by the hub.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
