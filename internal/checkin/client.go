package checkin

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/momo-deepdive/backend/internal/events"
	"github.com/momo-deepdive/backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // allow all origins in dev; restrict in production
	},
}

// WSMessage is the WebSocket message envelope.
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client is one operator's scanner console connection.
type Client struct {
	ID      string
	EventID string
	UserID  string
	hub     *Hub
	svc     *Service
	conn    *websocket.Conn
	send    chan WSMessage
	logger  *zap.Logger
}

// ServeWs handles the WebSocket upgrade for a scanner session. The
// token travels as a query parameter because browsers cannot set
// headers on a WebSocket handshake; only admins may connect.
func ServeWs(hub *Hub, svc *Service, logger *zap.Logger, validate func(token string) (uid, role string, err error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID := c.Query("event_id")
		token := c.Query("token")
		if eventID == "" || token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event_id and token required"})
			return
		}
		if events.ByID(eventID) == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		uid, role, err := validate(token)
		if err != nil || role != string(models.RoleAdmin) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := &Client{
			ID:      uuid.New().String(),
			EventID: eventID,
			UserID:  uid,
			hub:     hub,
			svc:     svc,
			conn:    conn,
			send:    make(chan WSMessage, 256),
			logger:  logger,
		}
		hub.Register(client)
		hub.Broadcast(eventID, "presence", gin.H{"sessions": hub.SessionCount(eventID)})
		go client.writePump()
		client.readPump()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.hub.Broadcast(c.EventID, "presence", gin.H{"sessions": c.hub.SessionCount(c.EventID)})
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(65536)
	_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))
		return nil
	})

	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			break
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))

		switch msg.Event {
		case "scan":
			var payload struct {
				Payload string `json:"payload"`
			}
			if err := json.Unmarshal(msg.Data, &payload); err != nil {
				continue
			}
			c.handleScan(payload.Payload)
		default:
			// ignore
		}
	}
}

// handleScan runs one decoded frame through the scan service. The
// verdict goes back to this operator; a successful check-in is also
// broadcast so every open console sees the roster move.
func (c *Client) handleScan(payload string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := c.svc.Scan(ctx, c.EventID, payload)
	if err != nil {
		c.logger.Error("scan failed", zap.Error(err), zap.String("event_id", c.EventID))
		data, _ := json.Marshal(gin.H{"message": "scan failed, try again"})
		select {
		case c.send <- WSMessage{Event: "scan_error", Data: data}:
		default:
		}
		return
	}
	data, _ := json.Marshal(result)
	select {
	case c.send <- WSMessage{Event: "scan_result", Data: data}:
	default:
	}
	if result.Outcome == OutcomeCheckedIn {
		c.hub.Broadcast(c.EventID, "checked_in", result)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(PingInterval * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
