package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/desktop"
)

type received struct {
	Type     string                 `json:"type"`
	Topic    string                 `json:"topic"`
	ClientID string                 `json:"clientId"`
	Data     map[string]interface{} `json:"data"`
	Error    string                 `json:"error"`
}

func setup(t *testing.T) (*desktop.Desktop, *Hub, *websocket.Conn) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	d, err := desktop.New(desktop.Options{})
	require.NoError(t, err)
	hub := NewHub(d, nil, nil)

	router := gin.New()
	router.GET("/stream", hub.HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	t.Cleanup(hub.Close)
	return d, hub, conn
}

func read(t *testing.T, conn *websocket.Conn) received {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg received
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestConnectSendsWelcomeAndSnapshot(t *testing.T) {
	_, hub, conn := setup(t)

	welcome := read(t, conn)
	assert.Equal(t, TypeWelcome, welcome.Type)
	assert.NotEmpty(t, welcome.ClientID)

	snap := read(t, conn)
	assert.Equal(t, TypeSnapshot, snap.Type)
	assert.Equal(t, "classic", snap.Data["theme"])
	assert.Equal(t, 1, hub.Clients())
}

func TestChangesAreStreamed(t *testing.T) {
	d, _, conn := setup(t)
	read(t, conn)
	read(t, conn)

	_, err := d.Windows.OpenApp("calculator", nil)
	require.NoError(t, err)

	update := read(t, conn)
	assert.Equal(t, TypeUpdate, update.Type)
	assert.Equal(t, string(desktop.TopicWindows), update.Topic)
	windows, ok := update.Data["windows"].([]interface{})
	require.True(t, ok)
	assert.Len(t, windows, 1)
}

func TestPingAndUnknown(t *testing.T) {
	_, _, conn := setup(t)
	read(t, conn)
	read(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
	assert.Equal(t, TypePong, read(t, conn).Type)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "launch-missiles"}))
	msg := read(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Equal(t, "unknown message type", msg.Error)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "snapshot"}))
	assert.Equal(t, TypeSnapshot, read(t, conn).Type)
}

func TestSlowClientIsDropped(t *testing.T) {
	d, err := desktop.New(desktop.Options{})
	require.NoError(t, err)
	hub := NewHub(d, nil, nil)

	cl := &client{id: "slow", send: make(chan []byte, 1)}
	hub.add(cl)
	hub.enqueue(cl, []byte("a"), TypeUpdate)
	hub.enqueue(cl, []byte("b"), TypeUpdate)

	assert.Equal(t, 0, hub.Clients())
	sent, full := cl.offer([]byte("c"))
	assert.False(t, sent)
	assert.False(t, full)
}
