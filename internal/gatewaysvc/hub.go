package gatewaysvc

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

// StatusUpdateMessage is the server→client push-channel frame published
// after any recognized status-map change (P7).
type StatusUpdateMessage struct {
	Type  string                 `json:"type"`
	JobID string                 `json:"job_id"`
	Data  model.BroadcastPayload `json:"data"`
}

// InitialStateMessage is sent once, immediately after a client connects.
type InitialStateMessage struct {
	Type string                       `json:"type"`
	Jobs map[string]model.StatusEntry `json:"jobs"`
}

// Hub owns the push-channel client registry and performs the
// snapshot-then-broadcast fan-out described in SPEC_FULL.md §4.1/§5,
// grounded on the Python original's api/websockets.py ConnectionManager.
// gorilla/websocket permits only one concurrent writer per connection, so
// every write to a registered conn -- Broadcast from a consumer goroutine
// or the initial_state send from the HTTP handler's goroutine -- is
// serialized through that connection's own writeMu. Broadcast runs on the
// goroutine that calls it; the hub has no goroutine or queue of its own.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]*sync.Mutex
	log     zerolog.Logger
	metrics *Metrics
}

// NewHub creates an empty hub. metrics may be nil (e.g. in tests), in which
// case the push-channel client gauge is simply not updated.
func NewHub(log zerolog.Logger, metrics *Metrics) *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*sync.Mutex), log: log, metrics: metrics}
}

// Register adds a newly accepted connection to the client registry.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = &sync.Mutex{}
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.pushClients.Inc()
	}
}

// Unregister removes a connection, e.g. after disconnect or a send failure.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	_, existed := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
	if existed && h.metrics != nil {
		h.metrics.pushClients.Dec()
	}
}

// ClientCount reports the number of currently connected push-channel
// clients, exported for the Prometheus gauge.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// snapshotClients copies the current client list (and each one's write
// lock) under the registry lock so that sends happen outside the lock and
// a slow/failing client cannot stall registration of new ones
// (SPEC_FULL.md §4.1 broadcast discipline).
func (h *Hub) snapshotClients() map[*websocket.Conn]*sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[*websocket.Conn]*sync.Mutex, len(h.clients))
	for c, writeMu := range h.clients {
		out[c] = writeMu
	}
	return out
}

// writeLockFor returns the per-connection write lock registered for conn,
// or nil if conn was never registered (or was already unregistered).
func (h *Hub) writeLockFor(conn *websocket.Conn) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clients[conn]
}

// Broadcast fans a status_update message out to every currently connected
// client. A per-client send failure disconnects only that client.
func (h *Hub) Broadcast(jobID string, entry model.StatusEntry) {
	msg := StatusUpdateMessage{
		Type:  "status_update",
		JobID: jobID,
		Data:  entry.ToBroadcastPayload(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("failed to marshal broadcast payload")
		return
	}

	for conn, writeMu := range h.snapshotClients() {
		writeMu.Lock()
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		err := conn.WriteMessage(websocket.TextMessage, payload)
		writeMu.Unlock()
		if err != nil {
			h.log.Warn().Err(err).Msg("push-channel client disconnected during broadcast")
			h.Unregister(conn)
		}
	}
}

// SendInitialState sends the one-time initial_state snapshot to a newly
// registered client, serialized against Broadcast through conn's own write
// lock so the two goroutines never write concurrently on the same conn.
func (h *Hub) SendInitialState(conn *websocket.Conn, jobs map[string]model.StatusEntry) error {
	writeMu := h.writeLockFor(conn)
	if writeMu == nil {
		return fmt.Errorf("conn not registered")
	}
	writeMu.Lock()
	defer writeMu.Unlock()

	msg := InitialStateMessage{Type: "initial_state", Jobs: jobs}
	return conn.WriteJSON(msg)
}
