package ws_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happychat/chat-service/internal/ws"
)

func newTestServer(t *testing.T) (*ws.Hub, string) {
	t.Helper()

	hub := ws.NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, w, r)
	}))
	t.Cleanup(server.Close)

	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func waitForClients(t *testing.T, hub *ws.Hub, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return hub.ClientCount() == want
	}, 2*time.Second, 10*time.Millisecond, "hub never reached %d clients", want)
}

func dial(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readWithDeadline(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)
	return message
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub, wsURL := newTestServer(t)

	sender := dial(t, wsURL)
	receiver := dial(t, wsURL)
	// Registration is asynchronous; wait until both have joined.
	waitForClients(t, hub, 2)

	payload := `{"event":"message","data":"hello"}`
	require.NoError(t, sender.WriteMessage(websocket.TextMessage, []byte(payload)))

	// The payload is rebroadcast verbatim to everyone, sender included.
	assert.Equal(t, payload, string(readWithDeadline(t, sender)))
	assert.Equal(t, payload, string(readWithDeadline(t, receiver)))
}

func TestHub_DisconnectedClientDoesNotBreakBroadcast(t *testing.T) {
	hub, wsURL := newTestServer(t)

	leaver := dial(t, wsURL)
	stayer := dial(t, wsURL)
	waitForClients(t, hub, 2)

	require.NoError(t, leaver.Close())
	waitForClients(t, hub, 1)

	require.NoError(t, stayer.WriteMessage(websocket.TextMessage, []byte("still here")))
	assert.Equal(t, "still here", string(readWithDeadline(t, stayer)))
}

func TestHub_MultipleMessagesKeepOrderPerSender(t *testing.T) {
	hub, wsURL := newTestServer(t)

	sender := dial(t, wsURL)
	receiver := dial(t, wsURL)
	waitForClients(t, hub, 2)

	for _, msg := range []string{"one", "two", "three"} {
		require.NoError(t, sender.WriteMessage(websocket.TextMessage, []byte(msg)))
	}

	for _, want := range []string{"one", "two", "three"} {
		assert.Equal(t, want, string(readWithDeadline(t, receiver)))
	}
}
