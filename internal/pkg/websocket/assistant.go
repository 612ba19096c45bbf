// Package websocket carries live assistant conversations. The transcript
// lives in connection memory and is discarded on disconnect; nothing is
// persisted server side.
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/app/services"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024 // 64KB
)

// Conversation states
const (
	stateIdle    = "idle"
	stateSending = "sending"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for development, in production you should restrict this
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// inboundMessage is what the client sends: one user turn
type inboundMessage struct {
	Content string `json:"content"`
}

// outboundMessage is what the server sends back
type outboundMessage struct {
	Type    string `json:"type"` // "message", "state" or "error"
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
	State   string `json:"state,omitempty"`
}

// AssistantHandler upgrades HTTP requests into assistant conversations
type AssistantHandler struct {
	chat   services.ChatService
	logger zerolog.Logger
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(chat services.ChatService, logger zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{
		chat:   chat,
		logger: logger,
	}
}

// Serve upgrades the request and runs the conversation until disconnect
func (h *AssistantHandler) Serve(w http.ResponseWriter, r *http.Request, userID int64) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Int64("userID", userID).Msg("WebSocket upgrade failed")
		return
	}

	c := &conversation{
		conn:   conn,
		chat:   h.chat,
		userID: userID,
		logger: h.logger,
		state:  stateIdle,
		// The transcript opens with the canned greeting, like the
		// mobile screens did
		transcript: []models.ChatMessage{
			{Role: models.ChatRoleAssistant, Content: services.AssistantGreeting},
		},
	}

	go c.pingLoop()
	c.writeMessage(outboundMessage{
		Type:    "message",
		Role:    string(models.ChatRoleAssistant),
		Content: services.AssistantGreeting,
	})
	c.readLoop()
}

// conversation holds the per-connection state
type conversation struct {
	conn   *websocket.Conn
	chat   services.ChatService
	userID int64
	logger zerolog.Logger

	mu         sync.Mutex // guards state, transcript and writes
	state      string
	transcript []models.ChatMessage
	closed     bool
}

func (c *conversation) readLoop() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info().Int64("userID", c.userID).Msg("Assistant conversation closed")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Int64("userID", c.userID).Msg("Unexpected WebSocket close")
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.writeMessage(outboundMessage{Type: "error", Content: "invalid message"})
			continue
		}

		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}

		c.handleUserTurn(content)
	}
}

// handleUserTurn relays one user message. At most one completion is in
// flight per connection; further turns are rejected until it finishes.
func (c *conversation) handleUserTurn(content string) {
	c.mu.Lock()
	if c.state == stateSending {
		c.mu.Unlock()
		c.writeMessage(outboundMessage{Type: "error", Content: "a reply is already being generated"})
		return
	}
	c.state = stateSending
	c.transcript = append(c.transcript, models.ChatMessage{Role: models.ChatRoleUser, Content: content})
	transcript := make([]models.ChatMessage, len(c.transcript))
	copy(transcript, c.transcript)
	c.mu.Unlock()

	c.writeMessage(outboundMessage{Type: "state", State: stateSending})

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		reply := c.chat.Complete(ctx, transcript)

		c.mu.Lock()
		c.transcript = append(c.transcript, models.ChatMessage{Role: models.ChatRoleAssistant, Content: reply})
		c.state = stateIdle
		c.mu.Unlock()

		c.writeMessage(outboundMessage{
			Type:    "message",
			Role:    string(models.ChatRoleAssistant),
			Content: reply,
		})
		c.writeMessage(outboundMessage{Type: "state", State: stateIdle})
	}()
}

func (c *conversation) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := c.conn.WriteMessage(websocket.PingMessage, nil)
		c.mu.Unlock()
		if err != nil {
			return
		}
	}
}

func (c *conversation) writeMessage(msg outboundMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		c.logger.Debug().Err(err).Int64("userID", c.userID).Msg("WebSocket write failed")
	}
}

func (c *conversation) close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		c.conn.Close()
	}
	c.mu.Unlock()
}
