package gateway

import (
	"sync"

	socketio "github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"

	pkgredis "github.com/sushilduseja/saarthi/internal/pkg/redis"
)

const (
	namespaceWeb = "/web"

	redisChanPreferences = "saarthi:gateway:preferences"

	eventGatewayConnect   = "GATEWAY_CONNECT"
	eventPreferenceChange = "PREFERENCE_CHANGE"

	messageJoin  = "join"
	messageLeave = "leave"
)

// Message is the envelope used by hub broadcasts and Redis fan-out. Room
// targets one client's open tabs; an empty Room reaches the whole namespace.
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
	Room    string      `json:"room,omitempty"`
}

type gatewayPayload struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type clientMeta struct {
	sid  string
	room string
}

// Hub fans preference changes out to every open tab of a client, across
// server instances via Redis pub/sub.
type Hub struct {
	mu sync.RWMutex

	sidRoom   map[string]string
	roomCount map[string]int

	broadcast  chan Message
	register   chan clientMeta
	unregister chan clientMeta

	rc     *pkgredis.Client
	logger *zap.Logger
	sio    *socketio.Server
}
