package live

import (
	"sync"

	"guesthouse/internal/metrics"

	"github.com/gorilla/websocket"
)

// Hub tracks open connections per topic so they can be counted and closed
// on shutdown.
type Hub struct {
	connections map[string]map[*websocket.Conn]struct{}
	mutex       sync.RWMutex
	metrics     *metrics.Metrics
}

func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		connections: make(map[string]map[*websocket.Conn]struct{}),
		metrics:     m,
	}
}

func (h *Hub) Register(topic string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.connections[topic] == nil {
		h.connections[topic] = make(map[*websocket.Conn]struct{})
	}
	h.connections[topic][conn] = struct{}{}
	h.metrics.LiveClient(topic, 1)
}

func (h *Hub) Unregister(topic string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	set, ok := h.connections[topic]
	if !ok {
		return
	}
	if _, ok := set[conn]; !ok {
		return
	}
	_ = conn.Close()
	delete(set, conn)
	h.metrics.LiveClient(topic, -1)
}

func (h *Hub) Count(topic string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections[topic])
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for topic, set := range h.connections {
		for conn := range set {
			_ = conn.Close()
			h.metrics.LiveClient(topic, -1)
		}
		delete(h.connections, topic)
	}
}
