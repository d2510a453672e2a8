package handler

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"auction-room/internal/decoder"
	"auction-room/internal/dispatcher"
	"auction-room/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// RoomSession is the write side of the room driven by connections
type RoomSession interface {
	Handle(connID string, cmd decoder.Command) error
	Reject(connID string, err error)
	Disconnect(connID string)
}

// Registry hands out per-connection outbound queues
type Registry interface {
	Register(id string) (*dispatcher.Client, error)
	Unregister(id string) bool
}

// ConnectionConfig holds websocket connection settings
type ConnectionConfig struct {
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
	AllowedOrigins []string
}

type WSHandler struct {
	session  RoomSession
	registry Registry
	config   ConnectionConfig
	upgrader websocket.Upgrader
	pumps    sync.WaitGroup
}

func NewWSHandler(session RoomSession, registry Registry, config ConnectionConfig) *WSHandler {
	return &WSHandler{
		session:  session,
		registry: registry,
		config:   config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(config.AllowedOrigins),
		},
	}
}

// connection is one websocket client. username is only touched by the read loop.
type connection struct {
	id       string
	ws       *websocket.Conn
	client   *dispatcher.Client
	username string
	handler  *WSHandler
}

// ServeWS handles GET /ws
func (h *WSHandler) ServeWS(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.Warn("ServeWS: websocket upgrade failed", map[string]any{
			"remote_addr": c.Request.RemoteAddr,
			"error":       err.Error(),
		})
		return
	}

	id := utils.GenerateConnectionID()
	client, err := h.registry.Register(id)
	if err != nil {
		utils.Error("ServeWS: failed to register connection", map[string]any{"connection_id": id, "error": err.Error()})
		ws.Close()
		return
	}

	conn := &connection{id: id, ws: ws, client: client, handler: h}
	utils.Info("websocket connection established", map[string]any{
		"connection_id": id,
		"remote_addr":   c.Request.RemoteAddr,
	})

	h.pumps.Add(1)
	go conn.writePump()
	go conn.readPump()
}

// Wait blocks until every write loop has flushed its queue and exited, or ctx
// is done. Queues are closed by unregistering their connections.
func (h *WSHandler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.pumps.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *connection) readPump() {
	h := c.handler
	defer func() {
		h.registry.Unregister(c.id)
		h.session.Disconnect(c.id)
		c.ws.Close()
		utils.Info("websocket connection closed", map[string]any{
			"connection_id": c.id,
			"username":      c.username,
			"evicted":       c.client.Evicted(),
		})
	}()

	if h.config.MaxMessageSize > 0 {
		c.ws.SetReadLimit(h.config.MaxMessageSize)
	}
	c.ws.SetReadDeadline(time.Now().Add(h.config.ReadTimeout))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(h.config.ReadTimeout))
		return nil
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				utils.Warn("websocket read error", map[string]any{"connection_id": c.id, "error": err.Error()})
			}
			return
		}
		c.ws.SetReadDeadline(time.Now().Add(h.config.ReadTimeout))
		c.handleMessage(raw)
	}
}

func (c *connection) handleMessage(raw []byte) {
	cmd, err := decoder.Decode(raw, c.username)
	if err != nil {
		c.handler.session.Reject(c.id, err)
		return
	}

	if err := c.handler.session.Handle(c.id, cmd); err != nil {
		return
	}
	if cmd.Kind == decoder.SetUsername {
		c.username = cmd.Username
	}
}

func (c *connection) writePump() {
	h := c.handler
	ticker := time.NewTicker(h.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.ws.Close()
		h.pumps.Done()
	}()

	for {
		select {
		case message, ok := <-c.client.Messages():
			c.ws.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
			if !ok {
				// unregistered or evicted
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				utils.Warn("websocket write error", map[string]any{"connection_id": c.id, "error": err.Error()})
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// originChecker accepts requests without an Origin header, and those whose
// origin is listed. "*" allows any origin.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		utils.Warn("websocket origin rejected", map[string]any{"origin": origin})
		return false
	}
}
