package notify

import (
	"log"
	"net/http"

	"needwise/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Handler serves the notification endpoints.
type Handler struct {
	Bus *Bus
	Hub *Hub
}

// GetNotifications returns the user's active notifications, arrival order.
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"notifications": h.Bus.List(userID)})
}

// DismissNotification removes by id. Dismissal is idempotent, so an id
// that already expired still answers 200.
func (h *Handler) DismissNotification(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	removed := h.Bus.Remove(id)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"removed": removed})
}

// Subscribe upgrades to a websocket and streams add/dismiss events for
// the requesting user.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("notify upgrade:", err)
		return
	}
	client := &Client{
		Conn:   conn,
		Send:   make(chan []byte, 256),
		UserID: userID,
	}
	h.Hub.Register(client)
	go writePump(client)
	go readPump(client, h.Hub)
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump only watches for the peer closing; subscribers never send.
func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.Unregister(c)
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
