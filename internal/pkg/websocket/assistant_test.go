package websocket_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/app/services"
	"github.com/edusync/edusync/internal/pkg/websocket"
)

// echoChatService replies with the last user turn and records transcripts.
type echoChatService struct {
	transcripts chan []models.ChatMessage
}

func (e *echoChatService) Complete(ctx context.Context, messages []models.ChatMessage) string {
	if e.transcripts != nil {
		copied := make([]models.ChatMessage, len(messages))
		copy(copied, messages)
		e.transcripts <- copied
	}
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == models.ChatRoleUser {
			return "eco: " + messages[i].Content
		}
	}
	return services.AssistantFallback
}

type wsMessage struct {
	Type    string `json:"type"`
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
	State   string `json:"state,omitempty"`
}

func dialAssistant(t *testing.T, chat services.ChatService) *gorilla.Conn {
	t.Helper()
	handler := websocket.NewAssistantHandler(chat, zerolog.Nop())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.Serve(w, r, 7)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *gorilla.Conn) wsMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg wsMessage
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func sendUserTurn(t *testing.T, conn *gorilla.Conn, content string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]string{"content": content}))
}

func TestAssistant_GreetsOnConnect(t *testing.T) {
	conn := dialAssistant(t, &echoChatService{})

	greeting := readMessage(t, conn)
	assert.Equal(t, "message", greeting.Type)
	assert.Equal(t, "assistant", greeting.Role)
	assert.Equal(t, services.AssistantGreeting, greeting.Content)
}

func TestAssistant_RepliesToUserTurn(t *testing.T) {
	chat := &echoChatService{transcripts: make(chan []models.ChatMessage, 1)}
	conn := dialAssistant(t, chat)

	readMessage(t, conn) // greeting

	sendUserTurn(t, conn, "hola")

	var reply wsMessage
	for {
		msg := readMessage(t, conn)
		if msg.Type == "message" {
			reply = msg
			break
		}
		// state transitions arrive between messages
		assert.Equal(t, "state", msg.Type)
	}
	assert.Equal(t, "assistant", reply.Role)
	assert.Equal(t, "eco: hola", reply.Content)

	// The transcript sent upstream carries the greeting and the user turn
	select {
	case transcript := <-chat.transcripts:
		require.Len(t, transcript, 2)
		assert.Equal(t, models.ChatRoleAssistant, transcript[0].Role)
		assert.Equal(t, services.AssistantGreeting, transcript[0].Content)
		assert.Equal(t, models.ChatRoleUser, transcript[1].Role)
		assert.Equal(t, "hola", transcript[1].Content)
	case <-time.After(5 * time.Second):
		t.Fatal("chat service was never called")
	}
}

func TestAssistant_TranscriptGrowsAcrossTurns(t *testing.T) {
	chat := &echoChatService{transcripts: make(chan []models.ChatMessage, 2)}
	conn := dialAssistant(t, chat)

	readMessage(t, conn) // greeting

	sendUserTurn(t, conn, "primera")
	for {
		if readMessage(t, conn).Type == "message" {
			break
		}
	}
	<-chat.transcripts

	sendUserTurn(t, conn, "segunda")
	for {
		if readMessage(t, conn).Type == "message" {
			break
		}
	}

	transcript := <-chat.transcripts
	// greeting, first turn, first reply, second turn
	require.Len(t, transcript, 4)
	assert.Equal(t, "primera", transcript[1].Content)
	assert.Equal(t, "eco: primera", transcript[2].Content)
	assert.Equal(t, "segunda", transcript[3].Content)
}
