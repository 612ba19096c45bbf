package dto

// ChatMessagePayload is a single turn of an assistant conversation
type ChatMessagePayload struct {
	Role    string `json:"role" binding:"required,oneof=system user assistant"`
	Content string `json:"content" binding:"required"`
}

// SendAssistantMessageRequest carries the conversation history for a
// completion request. The last entry is the new user turn.
type SendAssistantMessageRequest struct {
	Messages []ChatMessagePayload `json:"messages" binding:"required,min=1,dive"`
}

// AssistantMessageResponse is the assistant's reply
type AssistantMessageResponse struct {
	Reply string `json:"reply"`
}
