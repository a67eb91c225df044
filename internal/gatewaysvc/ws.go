package gatewaysvc

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Push-channel transport handshake/CORS is standard web plumbing, out of
	// scope per SPEC_FULL.md §1; any origin is accepted.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// PushChannel is GET /ws. On accept it sends an initial_state snapshot,
// then blocks reading from the client for the connection's lifetime;
// inbound text frames are logged and ignored (SPEC_FULL.md §4.1 operation
// 7/8).
func (h *Handlers) PushChannel(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("push-channel upgrade failed")
		return
	}

	// Snapshot before registering. A Broadcast racing this handler is
	// serialized with initial_state on the hub's per-connection write lock,
	// so the two frames never interleave mid-write; either may be sent first.
	snapshot := h.statusMap.Snapshot()
	h.hub.Register(conn)

	if err := h.hub.SendInitialState(conn, snapshot); err != nil {
		h.log.Warn().Err(err).Msg("failed to send initial_state")
		h.hub.Unregister(conn)
		return
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			h.hub.Unregister(conn)
			return
		}
		h.log.Debug().Bytes("frame", msg).Msg("ignoring inbound push-channel frame")
	}
}
