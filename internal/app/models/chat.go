package models

// ChatRole identifies the author of a chat message
type ChatRole string

// Chat roles as understood by the completion endpoint
const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one role/text pair of an assistant conversation.
// Transcripts are never persisted; they live in client memory (or in a
// WebSocket connection) and are lost when the conversation ends.
type ChatMessage struct {
	Role    ChatRole `json:"role" example:"user"`
	Content string   `json:"content" example:"¿Cuántos estudiantes hay?"`
}
