package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ros/backend/internal/domain/events"
	"github.com/GriffinCanCode/ros/backend/internal/domain/shell"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the desktop client runs on another port in dev
	},
}

// Commander dispatches command protocol messages sent by clients.
type Commander interface {
	Execute(name string, args map[string]any) (shell.Outcome, error)
}

// inbound is a client frame.
type inbound struct {
	Type    string         `json:"type"`
	Command string         `json:"command,omitempty"`
	Args    map[string]any `json:"args,omitempty"`
}

// Handler forwards bus events to websocket clients and accepts command
// protocol messages from them.
type Handler struct {
	bus      *events.Bus
	commands Commander
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(bus *events.Bus, commands Commander) *Handler {
	return &Handler{bus: bus, commands: commands, logger: zap.NewNop()}
}

// WithMetrics counts open connections.
func (h *Handler) WithMetrics(metrics *monitoring.Metrics) *Handler {
	h.metrics = metrics
	return h
}

// WithLogger sets the logger.
func (h *Handler) WithLogger(logger *zap.Logger) *Handler {
	if logger != nil {
		h.logger = logger.Named("stream")
	}
	return h
}

// conn serializes writes; gorilla allows one concurrent writer.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(msg any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(msg)
}

func (c *conn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// HandleConnection upgrades the request and streams until either side
// goes away.
func (h *Handler) HandleConnection(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	h.metrics.IncStreamConnections()
	defer h.metrics.DecStreamConnections()

	stream := h.bus.Stream()
	defer h.bus.Unstream(stream)

	cn := &conn{ws: ws}
	if err := cn.send(systemMessage("connected")); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.readLoop(cn)
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-stream:
			if !ok {
				return
			}
			if err := cn.send(eventMessage(ev)); err != nil {
				h.logger.Debug("stream write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := cn.ping(); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *Handler) readLoop(cn *conn) {
	ws := cn.ws
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg inbound
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("stream read error", zap.Error(err))
			}
			return
		}

		var reply types.StreamMessage
		switch msg.Type {
		case "ping":
			reply = types.StreamMessage{Type: "pong", Time: now()}
		case "command":
			reply = h.command(msg)
		default:
			reply = errorMessage("unknown message type")
		}
		if err := cn.send(reply); err != nil {
			return
		}
	}
}

func (h *Handler) command(msg inbound) types.StreamMessage {
	if h.commands == nil {
		return errorMessage("commands are not accepted on this stream")
	}
	outcome, err := h.commands.Execute(msg.Command, msg.Args)
	if err != nil {
		return errorMessage(err.Error())
	}
	reply := types.StreamMessage{Type: "command", Op: outcome.Command, Time: now()}
	switch {
	case !outcome.Applied:
		reply.Message = "ignored"
	case outcome.WindowID != "":
		reply.Message = outcome.WindowID
	case outcome.Wallpaper != "":
		reply.Message = outcome.Wallpaper
	default:
		reply.Message = "applied"
	}
	return reply
}

func now() int64 { return time.Now().UnixMilli() }

func eventMessage(ev events.Event) types.StreamMessage {
	return types.StreamMessage{Type: ev.Type, Op: ev.Op, Path: ev.Path, Time: ev.Timestamp}
}

func systemMessage(msg string) types.StreamMessage {
	return types.StreamMessage{Type: "system", Message: msg, Time: now()}
}

func errorMessage(msg string) types.StreamMessage {
	return types.StreamMessage{Type: "error", Message: msg, Time: now()}
}
