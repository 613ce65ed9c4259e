package realtime

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/heartmarshall/lostfound-backend/pkg/ctxutil"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// Handler upgrades HTTP requests to websocket connections registered with a Hub.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewHandler creates the websocket endpoint. allowedOrigins is a
// comma-separated list; "*" accepts any origin.
func NewHandler(hub *Hub, allowedOrigins string, log *slog.Logger) *Handler {
	origins := splitOrigins(allowedOrigins)
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(origins, "*") || slices.Contains(origins, origin)
			},
		},
		log: log.With("handler", "realtime"),
	}
}

func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// client is one websocket connection. Only its write goroutine writes to conn.
type client struct {
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	user   uuid.UUID
	joined map[uuid.UUID]struct{}
}

func (c *client) enqueue(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// ServeHTTP handles GET /socket.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.log.DebugContext(r.Context(), "websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	c := &client{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
		user:   userID,
		joined: make(map[uuid.UUID]struct{}),
	}

	h.hub.metrics.RealtimeConns.Inc()
	h.log.DebugContext(r.Context(), "websocket connected", slog.String("remote", r.RemoteAddr))

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writeLoop(c)
	}()

	h.readLoop(c)

	close(c.done)
	for ch := range c.joined {
		h.hub.leave(ch, c)
	}
	<-writerDone
	_ = conn.Close()

	h.hub.metrics.RealtimeConns.Dec()
	h.log.DebugContext(r.Context(), "websocket disconnected", slog.Int("rooms", len(c.joined)))
}

func (h *Handler) readLoop(c *client) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket read failed", slog.String("error", err.Error()))
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			h.reply(c, EventError, "malformed frame")
			continue
		}

		switch ev.Event {
		case EventJoinRoom:
			h.handleJoin(c, ev.Data)
		default:
			h.reply(c, EventError, "unknown event "+ev.Event)
		}
	}
}

func (h *Handler) handleJoin(c *client, data json.RawMessage) {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		h.reply(c, EventError, "joinRoom expects a user id string")
		return
	}

	channel, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || channel == uuid.Nil {
		h.reply(c, EventError, "invalid user id")
		return
	}

	if c.user != uuid.Nil && c.user != channel {
		h.reply(c, EventError, "cannot join another user's room")
		return
	}

	h.hub.join(channel, c)
	c.joined[channel] = struct{}{}
	h.reply(c, EventJoined, channel.String())
}

func (h *Handler) reply(c *client, event string, data string) {
	frame, err := encodeEvent(event, data)
	if err != nil {
		return
	}
	if !c.enqueue(frame) {
		h.log.Warn("websocket reply dropped", slog.String("event", event))
	}
}

func (h *Handler) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				h.closeOnWriteError(c, err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.closeOnWriteError(c, err)
				return
			}
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// closeOnWriteError unblocks the read loop so the connection is torn down.
func (h *Handler) closeOnWriteError(c *client, err error) {
	if !errors.Is(err, websocket.ErrCloseSent) {
		h.log.Debug("websocket write failed", slog.String("error", err.Error()))
	}
	_ = c.conn.Close()
}
