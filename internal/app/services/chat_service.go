package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusync/edusync/internal/app/models"
)

// Assistant texts shown to the mobile clients, kept in Spanish to match them
const (
	AssistantSystemPrompt = "Eres Gladys, una asistente IA que ayuda a consultar la base de datos de estudiantes. " +
		"Usa los datos proporcionados en el contexto cuando sea necesario. " +
		"Si no sabes la respuesta con certeza, responde que no tienes suficiente información."

	AssistantGreeting = "¡Hola! Soy Gladys, tu asistente IA. Pregúntame lo que necesites sobre la base de datos " +
		"de estudiantes o cualquier otra duda."

	AssistantFallback = "Error al obtener respuesta"
)

// Completion request parameters the mobile clients used
const (
	completionTemperature = 1
	completionMaxTokens   = 1024
	completionTopP        = 1
)

// ChatConfig configures the upstream completion endpoint
type ChatConfig struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// ChatService relays conversations to a hosted completion endpoint
type ChatService interface {
	// Complete returns the assistant's reply for the given transcript.
	// It never fails; any upstream problem yields the fallback text.
	Complete(ctx context.Context, messages []models.ChatMessage) string
}

type completionRequest struct {
	Model               string               `json:"model"`
	Messages            []models.ChatMessage `json:"messages"`
	Temperature         float64              `json:"temperature"`
	MaxCompletionTokens int                  `json:"max_completion_tokens"`
	TopP                float64              `json:"top_p"`
	Stream              bool                 `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	config     ChatConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(config ChatConfig, logger zerolog.Logger) ChatService {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &chatServiceImpl{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
	}
}

// Complete sends the transcript upstream and extracts the reply
func (s *chatServiceImpl) Complete(ctx context.Context, messages []models.ChatMessage) string {
	if s.config.APIKey == "" {
		s.logger.Warn().Msg("Chat API key is not configured")
		return AssistantFallback
	}

	reply, err := s.complete(ctx, messages)
	if err != nil {
		s.logger.Error().Err(err).Msg("Completion request failed")
		return AssistantFallback
	}

	return reply
}

func (s *chatServiceImpl) complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:               s.config.Model,
		Messages:            withSystemPrompt(messages),
		Temperature:         completionTemperature,
		MaxCompletionTokens: completionMaxTokens,
		TopP:                completionTopP,
		Stream:              false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("completion endpoint returned %d: %s", resp.StatusCode, string(payload))
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		// Shape was valid JSON but not what we expect
		s.logger.Warn().Msg("Completion response carried no choices")
		return AssistantFallback, nil
	}

	return parsed.Choices[0].Message.Content, nil
}

// withSystemPrompt makes sure the transcript opens with the fixed instruction
func withSystemPrompt(messages []models.ChatMessage) []models.ChatMessage {
	if len(messages) > 0 && messages[0].Role == models.ChatRoleSystem {
		return messages
	}

	out := make([]models.ChatMessage, 0, len(messages)+1)
	out = append(out, models.ChatMessage{Role: models.ChatRoleSystem, Content: AssistantSystemPrompt})
	out = append(out, messages...)
	return out
}
