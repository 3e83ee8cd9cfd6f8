package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Topic tags a change event with the aggregate it belongs to. Events
// carry no payload beyond the topic: subscribers react by refetching the
// named aggregate, which keeps clients fully consistent after every
// refresh without any incremental merge logic.
type Topic string

const (
	TopicOrders      Topic = "orders"
	TopicReceivables Topic = "receivables"
	TopicCatalog     Topic = "catalog"
	TopicSettings    Topic = "settings"
)

// Event is one change notification.
type Event struct {
	Topic Topic     `json:"topic"`
	At    time.Time `json:"at"`
}

// Hub fans change events out to all subscribers. Slow subscribers drop
// events rather than block writers; a dropped event is harmless because
// the next one on the same topic triggers the same refetch.
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan Event]struct{}
	buffer int
	log    *zap.Logger
}

// NewHub creates a notification hub.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[chan Event]struct{}),
		buffer: 16,
		log:    log,
	}
}

// Publish sends a change event for topic to every subscriber.
func (h *Hub) Publish(topic Topic) {
	event := Event{Topic: topic, At: time.Now().UTC()}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
			h.log.Debug("subscriber lagging, dropping change event", zap.String("topic", string(topic)))
		}
	}
}

// Subscribe registers a new subscriber. The caller must call the
// returned cancel function when done.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}
