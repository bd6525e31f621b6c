package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/desktop"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
	readLimit  = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS middleware does not cover upgrades; the desktop is local
	},
}

// Hub fans desktop changes out to connected clients
type Hub struct {
	desktop *desktop.Desktop
	logger  *zap.Logger
	metrics *monitoring.Metrics

	mu      sync.RWMutex
	clients map[string]*client

	unsubscribe func()
}

type client struct {
	id   string
	conn *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// offer queues data without blocking. full is true when the buffer had no
// room; a closed client silently discards.
func (cl *client) offer(data []byte) (sent, full bool) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.closed {
		return false, false
	}
	select {
	case cl.send <- data:
		return true, false
	default:
		return false, true
	}
}

// shutdown closes send once and reports whether this call did it
func (cl *client) shutdown() bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.closed {
		return false
	}
	cl.closed = true
	close(cl.send)
	return true
}

// NewHub creates a hub and subscribes it to desktop changes
func NewHub(d *desktop.Desktop, logger *zap.Logger, metrics *monitoring.Metrics) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		desktop: d,
		logger:  logger,
		metrics: metrics,
		clients: make(map[string]*client),
	}
	h.unsubscribe = d.Subscribe(h.publish)
	return h
}

// HandleConnection upgrades the request and serves the client until it
// disconnects
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	h.add(cl)
	h.logger.Debug("WebSocket client connected", zap.String("client_id", cl.id))

	h.deliver(cl, Message{Type: TypeWelcome, ClientID: cl.id})
	h.deliver(cl, Message{Type: TypeSnapshot, Data: h.desktop.Snapshot()})

	go h.writePump(cl)
	h.readPump(cl)
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and stops listening for changes
func (h *Hub) Close() {
	if h.unsubscribe != nil {
		h.unsubscribe()
	}
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		clients = append(clients, cl)
	}
	h.mu.Unlock()

	for _, cl := range clients {
		h.remove(cl)
	}
}

func (h *Hub) add(cl *client) {
	h.mu.Lock()
	h.clients[cl.id] = cl
	h.mu.Unlock()
	h.metrics.IncWSConnections()
}

// remove is idempotent; closing send stops the write pump, which closes
// the connection
func (h *Hub) remove(cl *client) {
	if !cl.shutdown() {
		return
	}
	h.mu.Lock()
	delete(h.clients, cl.id)
	h.mu.Unlock()
	h.metrics.DecWSConnections()
	h.logger.Debug("WebSocket client disconnected", zap.String("client_id", cl.id))
}

// publish turns a desktop change into an update for every client
func (h *Hub) publish(topic desktop.Topic) {
	msg := Message{Type: TypeUpdate, Topic: string(topic), Data: h.topicData(topic)}
	data, err := encode(msg)
	if err != nil {
		h.logger.Error("Failed to encode update", zap.String("topic", string(topic)), zap.Error(err))
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	for _, cl := range clients {
		h.enqueue(cl, data, TypeUpdate)
	}
}

func (h *Hub) topicData(topic desktop.Topic) interface{} {
	switch topic {
	case desktop.TopicWindows:
		return h.desktop.Windows.State()
	case desktop.TopicVFS:
		return h.desktop.FS.Nodes()
	case desktop.TopicNotes:
		return h.desktop.Notes.List()
	case desktop.TopicTheme:
		return gin.H{"mode": h.desktop.Theme.Mode(), "topInset": h.desktop.Theme.TopInset()}
	default:
		return h.desktop.Snapshot()
	}
}

func (h *Hub) deliver(cl *client, msg Message) {
	data, err := encode(msg)
	if err != nil {
		h.logger.Error("Failed to encode message", zap.String("type", msg.Type), zap.Error(err))
		return
	}
	h.enqueue(cl, data, msg.Type)
}

// enqueue never blocks; a client whose buffer is full is dropped
func (h *Hub) enqueue(cl *client, data []byte, msgType string) {
	sent, full := cl.offer(data)
	switch {
	case sent:
		h.metrics.RecordWSMessage("out", msgType)
	case full:
		h.logger.Warn("Dropping slow WebSocket client", zap.String("client_id", cl.id))
		h.remove(cl)
	}
}

func (h *Hub) readPump(cl *client) {
	defer h.remove(cl)

	cl.conn.SetReadLimit(readLimit)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("WebSocket read error", zap.String("client_id", cl.id), zap.Error(err))
			}
			return
		}

		in, err := decode(data)
		if err != nil {
			h.deliver(cl, Message{Type: TypeError, Error: "invalid message"})
			continue
		}
		h.metrics.RecordWSMessage("in", in.Type)

		switch in.Type {
		case TypePing:
			h.deliver(cl, Message{Type: TypePong})
		case TypeSnapshot:
			h.deliver(cl, Message{Type: TypeSnapshot, Data: h.desktop.Snapshot()})
		default:
			h.deliver(cl, Message{Type: TypeError, Error: "unknown message type"})
		}
	}
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case data, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.remove(cl)
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(cl)
				return
			}
		}
	}
}
