// Package realtime pushes notifications to connected clients.
//
// Each user id is a channel. A connection joins the channel of the user it
// wants events for; publishing to a channel with no connections is a no-op.
// Delivery is best-effort: a connection that cannot keep up drops events.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/internal/metrics"
)

// Event names on the wire.
const (
	EventJoinRoom     = "joinRoom"
	EventJoined       = "joined"
	EventNotification = "notification"
	EventError        = "error"
)

// Event is the envelope for every frame in both directions.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NotificationPayload is the data of a notification event.
type NotificationPayload struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func newNotificationPayload(n domain.Notification) NotificationPayload {
	return NotificationPayload{ID: n.ID, Message: n.Message, Read: n.Read, CreatedAt: n.CreatedAt}
}

func encodeEvent(name string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s data: %w", name, err)
	}
	return json.Marshal(Event{Event: name, Data: raw})
}

// subscriber is anything that can take an encoded frame without blocking.
type subscriber interface {
	enqueue(frame []byte) bool
}

// Hub is the channel registry. It is mutated only by join and leave.
type Hub struct {
	mu       sync.RWMutex
	channels map[uuid.UUID]map[subscriber]struct{}

	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewHub creates an empty registry.
func NewHub(log *slog.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		channels: make(map[uuid.UUID]map[subscriber]struct{}),
		log:      log.With("component", "realtime"),
		metrics:  m,
	}
}

func (h *Hub) join(channel uuid.UUID, s subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.channels[channel]
	if !ok {
		set = make(map[subscriber]struct{})
		h.channels[channel] = set
	}
	set[s] = struct{}{}
}

func (h *Hub) leave(channel uuid.UUID, s subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.channels[channel]
	if !ok {
		return
	}
	delete(set, s)
	if len(set) == 0 {
		delete(h.channels, channel)
	}
}

// Subscribers returns the number of connections on a channel.
func (h *Hub) Subscribers(channel uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// Publish sends a notification event to every connection on the user's
// channel and returns how many accepted it.
func (h *Hub) Publish(ctx context.Context, userID uuid.UUID, n domain.Notification) (int, error) {
	frame, err := encodeEvent(EventNotification, newNotificationPayload(n))
	if err != nil {
		return 0, err
	}
	return h.broadcast(ctx, userID, frame), nil
}

func (h *Hub) broadcast(ctx context.Context, channel uuid.UUID, frame []byte) int {
	h.mu.RLock()
	snapshot := make([]subscriber, 0, len(h.channels[channel]))
	for s := range h.channels[channel] {
		snapshot = append(snapshot, s)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, s := range snapshot {
		if s.enqueue(frame) {
			delivered++
			continue
		}
		h.metrics.RealtimeDropped.Inc()
		h.log.WarnContext(ctx, "realtime event dropped, slow connection", slog.String("channel", channel.String()))
	}
	h.metrics.RealtimePublished.Add(float64(delivered))
	return delivered
}
