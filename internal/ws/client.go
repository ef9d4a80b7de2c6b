package ws

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aeg58/crm-v2/entity"
	"github.com/aeg58/crm-v2/internal/lib/sl"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is a single WebSocket connection from a CRM user.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	user    *entity.UserAuth
	roomsMu sync.Mutex
	rooms   map[string]bool
}

func (c *Client) joinRoom(customerID string) {
	c.roomsMu.Lock()
	c.rooms[customerID] = true
	c.roomsMu.Unlock()
}

func (c *Client) leaveRoom(customerID string) {
	c.roomsMu.Lock()
	delete(c.rooms, customerID)
	c.roomsMu.Unlock()
}

// wantsCustomer reports whether an event for customerID should reach
// this client. No subscriptions means the client watches everything.
func (c *Client) wantsCustomer(customerID string) bool {
	c.roomsMu.Lock()
	defer c.roomsMu.Unlock()
	if len(c.rooms) == 0 {
		return true
	}
	return c.rooms[customerID]
}

// readPump pumps messages from the WebSocket connection to the hub.
// It handles ping/pong keepalive and detects disconnects.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		c.hub.HandleClientMessage(c, message)
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Authenticator validates a bearer token for the upgrade handshake.
type Authenticator interface {
	AuthenticateByToken(token string) (*entity.UserAuth, error)
}

// ServeWs handles WebSocket upgrade requests. The token travels in the
// query string because browsers cannot set headers on WebSocket
// connects.
func ServeWs(hub *Hub, auth Authenticator, log *slog.Logger, w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := auth.AuthenticateByToken(token)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket upgrade failed", sl.Err(err))
		return
	}

	client := &Client{
		hub:   hub,
		conn:  conn,
		send:  make(chan []byte, 256),
		user:  user,
		rooms: make(map[string]bool),
	}

	hub.register <- client

	go client.writePump()
	go client.readPump()
}
