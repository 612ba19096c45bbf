package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/app/models/dto"
	"github.com/edusync/edusync/internal/app/services"
	"github.com/edusync/edusync/internal/middleware"
	"github.com/edusync/edusync/internal/pkg/websocket"
)

// ChatController handles assistant conversations
type ChatController struct {
	chatService services.ChatService
	assistant   *websocket.AssistantHandler
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, assistant *websocket.AssistantHandler, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		assistant:   assistant,
		logger:      logger,
	}
}

// SendMessage relays a transcript and returns the assistant's reply
// @Summary Send assistant message
// @Description Relays the conversation to the completion endpoint. The reply
// @Description is always a message; upstream failures yield a fallback text.
// @Tags assistant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendAssistantMessageRequest true "Conversation so far"
// @Success 200 {object} dto.APIResponse{data=dto.AssistantMessageResponse}
// @Router /assistant/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	var req dto.SendAssistantMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	messages := make([]models.ChatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, models.ChatMessage{
			Role:    models.ChatRole(m.Role),
			Content: m.Content,
		})
	}

	reply := c.chatService.Complete(ctx.Request.Context(), messages)

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.AssistantMessageResponse{Reply: reply}))
}

// Greeting returns the canned opening assistant message
// @Summary Assistant greeting
// @Tags assistant
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AssistantMessageResponse}
// @Router /assistant/greeting [get]
func (c *ChatController) Greeting(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.AssistantMessageResponse{Reply: services.AssistantGreeting}))
}

// Websocket upgrades the request into a live assistant conversation
// @Summary Assistant WebSocket
// @Description Live conversation; the transcript lives in connection memory
// @Description and is discarded on disconnect.
// @Tags assistant
// @Security BearerAuth
// @Success 101 {string} string "Switching protocols"
// @Router /ws/assistant [get]
func (c *ChatController) Websocket(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	c.assistant.Serve(ctx.Writer, ctx.Request, userID)
}
