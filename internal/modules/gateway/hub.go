package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	socketio "github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"

	"github.com/sushilduseja/saarthi/internal/modules/preference"
	pkgredis "github.com/sushilduseja/saarthi/internal/pkg/redis"
)

func NewHub(rc *pkgredis.Client, logger *zap.Logger) *Hub {
	h := &Hub{
		sidRoom:    make(map[string]string),
		roomCount:  make(map[string]int),
		broadcast:  make(chan Message, 256),
		register:   make(chan clientMeta, 256),
		unregister: make(chan clientMeta, 256),
		rc:         rc,
		logger:     logger,
		sio:        socketio.NewServer(nil, nil),
	}
	h.registerNamespace()
	return h
}

// Run starts the hub loop and Redis subscriber.
func (h *Hub) Run(ctx context.Context) {
	go h.subscribeRedis(ctx)

	for {
		select {
		case <-ctx.Done():
			h.sio.Close(nil)
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case msg := <-h.broadcast:
			h.deliver(msg)
			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			if err := h.rc.Publish(ctx, redisChanPreferences, string(data)); err != nil {
				h.logger.Warn("gateway publish failed",
					zap.String("channel", redisChanPreferences), zap.Error(err))
			}
		}
	}
}

func (h *Hub) registerClient(c clientMeta) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if oldRoom, ok := h.sidRoom[c.sid]; ok {
		if oldRoom == c.room {
			return
		}
		if h.roomCount[oldRoom] > 0 {
			h.roomCount[oldRoom]--
		}
	}
	h.sidRoom[c.sid] = c.room
	h.roomCount[c.room]++
}

func (h *Hub) unregisterClient(c clientMeta) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.sidRoom[c.sid]
	if !ok {
		return
	}
	delete(h.sidRoom, c.sid)
	if h.roomCount[room] > 0 {
		h.roomCount[room]--
	}
}

// Broadcast sends an event to all sockets in room, or to the whole namespace
// when room is empty.
func (h *Hub) Broadcast(event string, payload interface{}, room string) {
	h.broadcast <- Message{Event: event, Payload: payload, Room: room}
}

// BroadcastPreference pushes a preference change to every open tab of the
// client that wrote it. Wired as a preference.Service subscriber.
func (h *Hub) BroadcastPreference(change preference.Change) {
	h.Broadcast(eventPreferenceChange, change, clientRoom(change.ClientID))
}

// ClientCount returns the number of connected sockets, optionally filtered
// by room.
func (h *Hub) ClientCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if room == "" {
		return len(h.sidRoom)
	}
	return h.roomCount[room]
}

// Handler returns the socket.io HTTP handler mounted at /socket.io.
func (h *Hub) Handler() http.Handler {
	return h.sio.ServeHandler(nil)
}

func (h *Hub) emit(msg Message) {
	ns := h.sio.Of(namespaceWeb, nil)
	payload := gatewayPayload{Type: msg.Event, Data: msg.Payload}
	if msg.Room == "" {
		ns.Emit("message", payload)
		return
	}
	ns.To(socketio.Room(msg.Room)).Emit("message", payload)
}

func (h *Hub) deliver(msg Message) {
	h.emit(msg)
}

// subscribeRedis listens for broadcasts from other server instances.
func (h *Hub) subscribeRedis(ctx context.Context) {
	pubsub := h.rc.Subscribe(ctx, redisChanPreferences)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return

		case redisMsg, ok := <-ch:
			if !ok {
				return
			}
			var msg Message
			if err := json.Unmarshal([]byte(redisMsg.Payload), &msg); err != nil {
				continue
			}
			h.deliver(msg)
		}
	}
}

func clientRoom(clientID string) string {
	return "client:" + clientID
}
