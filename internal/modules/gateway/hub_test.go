package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRoomBookkeeping(t *testing.T) {
	h := NewHub(nil, zap.NewNop())

	h.registerClient(clientMeta{sid: "s1", room: "client:a"})
	h.registerClient(clientMeta{sid: "s2", room: "client:a"})
	h.registerClient(clientMeta{sid: "s3", room: "client:b"})

	assert.Equal(t, 3, h.ClientCount(""))
	assert.Equal(t, 2, h.ClientCount("client:a"))
	assert.Equal(t, 1, h.ClientCount("client:b"))

	// Re-registering the same socket into another room moves it.
	h.registerClient(clientMeta{sid: "s2", room: "client:b"})
	assert.Equal(t, 1, h.ClientCount("client:a"))
	assert.Equal(t, 2, h.ClientCount("client:b"))

	h.unregisterClient(clientMeta{sid: "s1"})
	h.unregisterClient(clientMeta{sid: "unknown"})
	assert.Equal(t, 2, h.ClientCount(""))
	assert.Equal(t, 0, h.ClientCount("client:a"))
}

func TestClientRoom(t *testing.T) {
	assert.Equal(t, "client:abc-123", clientRoom("abc-123"))
}

func TestParseInboundWebMessage(t *testing.T) {
	msg, ok := parseInboundWebMessage(`{"type":"join","payload":{"clientId":"abc"}}`)
	require.True(t, ok)
	assert.Equal(t, messageJoin, msg.Type)
	assert.Equal(t, "abc", strFromAny(msg.Payload["clientId"]))

	msg, ok = parseInboundWebMessage(map[string]interface{}{
		"type":    "leave",
		"payload": map[string]interface{}{},
	})
	require.True(t, ok)
	assert.Equal(t, messageLeave, msg.Type)

	_, ok = parseInboundWebMessage(`{"payload":{}}`)
	assert.False(t, ok)

	_, ok = parseInboundWebMessage()
	assert.False(t, ok)
}
