// Package ws pushes notifications to connected browsers in real time.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"assetdesk/internal/middleware"
	"assetdesk/internal/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
	sendBuffer = 16
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connections per user id. One user may hold several tabs.
type Hub struct {
	mu       sync.Mutex
	clients  map[uuid.UUID]map[*client]struct{}
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Auth happens via the session cookie; the API is same-origin
			// behind the reverse proxy.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// Push sends payload to all of the user's connections. Slow clients are
// dropped rather than blocking the caller.
func (h *Hub) Push(userID uuid.UUID, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Warn().Err(err).Msg("push marshal failed")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- data:
		default:
			close(c.send)
			delete(h.clients[userID], c)
		}
	}
}

// Serve upgrades GET /ws. The user must be authenticated (WithAuth puts the
// id in context).
func (h *Hub) Serve() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uidStr, ok := utils.GetString(r.Context(), middleware.CtxUserID)
		if !ok || uidStr == "" {
			utils.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		uid, err := uuid.Parse(uidStr)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "invalid session")
			return
		}

		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warn().Err(err).Msg("ws upgrade failed")
			return
		}

		c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
		h.register(uid, c)
		h.log.Debug().Stringer("user", uid).Msg("ws connected")

		go h.writePump(c)
		h.readPump(uid, c)
	}
}

func (h *Hub) register(uid uuid.UUID, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[uid] == nil {
		h.clients[uid] = make(map[*client]struct{})
	}
	h.clients[uid][c] = struct{}{}
}

func (h *Hub) unregister(uid uuid.UUID, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[uid]; ok {
		if _, live := set[c]; live {
			close(c.send)
			delete(set, c)
		}
		if len(set) == 0 {
			delete(h.clients, uid)
		}
	}
}

// readPump discards inbound frames; the socket is push-only. It exists to
// answer pings and to notice the close.
func (h *Hub) readPump(uid uuid.UUID, c *client) {
	defer func() {
		h.unregister(uid, c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
