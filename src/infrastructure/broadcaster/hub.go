package broadcaster

import (
	"encoding/json"
	"net/http"
	"time"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is served from the same origin in production, but
	// the original tool accepted any origin and operators rely on it.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StatusProvider supplies the snapshot pushed to each new subscriber.
type StatusProvider func() campaign.StatusPayload

// Hub fans orchestrator and channel events out to every connected
// dashboard session. Join/leave and emission are serialized on the run
// loop, so subscribers may come and go mid-broadcast safely.
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan campaign.Event
	status     StatusProvider
	Logger     *logger.Logger
}

func NewHub(status StatusProvider, loggerInstance *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan campaign.Event, sendBufferSize),
		status:     status,
		Logger:     loggerInstance,
	}
}

// Publish implements campaign.EventPublisher. Events are delivered to
// subscribers in emission order.
func (h *Hub) Publish(event campaign.Event) {
	h.broadcast <- event
}

// Run owns the subscriber set. It must be started before the first
// Publish and runs until stop is closed.
func (h *Hub) Run(stop chan struct{}) {
	for {
		select {
		case <-stop:
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			h.Logger.Info("Dashboard session connected", zap.Int("sessions", len(h.clients)))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.Logger.Info("Dashboard session disconnected", zap.Int("sessions", len(h.clients)))
			}
		case event := <-h.broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				h.Logger.Error("Couldn't marshal event", zap.String("event", event.Name), zap.Error(err))
				continue
			}
			for c := range h.clients {
				select {
				case c.send <- payload:
				default:
					// Client can't keep up; drop it rather than stall
					// the emission order for everyone else.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// ServeWS upgrades the request and subscribes the session. The current
// channel status is pushed first so late subscribers get a snapshot.
func (h *Hub) ServeWS(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.Logger.Error("Websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBufferSize)}

	if h.status != nil {
		snapshot, err := json.Marshal(campaign.Event{Name: campaign.EventStatus, Payload: h.status()})
		if err == nil {
			c.send <- snapshot
		}
	}

	h.register <- c
	go c.writePump()
	go c.readPump()
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		// The dashboard only listens; reads exist to notice closure.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
