package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB

	// Slow or stalled dashboard clients drop events rather than block
	// the publishing request.
	subBuffer = 16
)

// activityEvent is one content change pushed to connected dashboards.
type activityEvent struct {
	Action string    `json:"action"` // created | updated | deleted
	Entity string    `json:"entity"` // guide | category
	Name   string    `json:"name"`
	At     time.Time `json:"at"`
}

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// activityHub fans content-change events out to subscribed connections.
type activityHub struct {
	mu   sync.Mutex
	subs map[chan activityEvent]struct{}
}

func newActivityHub() *activityHub {
	return &activityHub{subs: make(map[chan activityEvent]struct{})}
}

func (hub *activityHub) subscribe() chan activityEvent {
	ch := make(chan activityEvent, subBuffer)
	hub.mu.Lock()
	hub.subs[ch] = struct{}{}
	hub.mu.Unlock()
	return ch
}

func (hub *activityHub) unsubscribe(ch chan activityEvent) {
	hub.mu.Lock()
	delete(hub.subs, ch)
	hub.mu.Unlock()
}

// publish delivers the event to every subscriber without blocking.
func (hub *activityHub) publish(e activityEvent) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for ch := range hub.subs {
		select {
		case ch <- e:
		default: // subscriber is behind; drop
		}
	}
}

// publishActivity is called from the mutating admin handlers after a
// successful change.
func (h *Handler) publishActivity(action, entity, name string) {
	h.activity.publish(activityEvent{
		Action: action,
		Entity: entity,
		Name:   name,
		At:     time.Now().UTC(),
	})
}

// Upgrader for HTTP -> WebSocket. The endpoint sits behind requireAdmin, so
// same-origin dashboard pages are the only expected clients.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConnect streams dashboard activity events over a WebSocket.
func (h *Handler) wsConnect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	events := h.activity.subscribe()
	defer h.activity.unsubscribe(events)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case ev := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(wsEnvelope{Type: "activity", Data: ev}); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}
