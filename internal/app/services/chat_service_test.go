package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/app/services"
)

type upstreamPayload struct {
	Model               string `json:"model"`
	Messages            []models.ChatMessage
	Temperature         float64 `json:"temperature"`
	MaxCompletionTokens int     `json:"max_completion_tokens"`
	TopP                float64 `json:"top_p"`
	Stream              bool    `json:"stream"`
}

func completionBody(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":` + strconvQuote(content) + `}}]}`
}

func strconvQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestChatService_CompleteRelaysTranscript(t *testing.T) {
	var captured upstreamPayload
	var authHeader string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(completionBody("Hay 42 estudiantes registrados.")))
	}))
	defer upstream.Close()

	svc := services.NewChatService(services.ChatConfig{
		Endpoint: upstream.URL,
		APIKey:   "test-key",
		Model:    "meta-llama/llama-4-scout-17b-16e-instruct",
		Timeout:  5 * time.Second,
	}, zerolog.Nop())

	reply := svc.Complete(context.Background(), []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "¿Cuántos estudiantes hay?"},
	})

	assert.Equal(t, "Hay 42 estudiantes registrados.", reply)
	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "meta-llama/llama-4-scout-17b-16e-instruct", captured.Model)
	assert.Equal(t, float64(1), captured.Temperature)
	assert.Equal(t, 1024, captured.MaxCompletionTokens)
	assert.Equal(t, float64(1), captured.TopP)
	assert.False(t, captured.Stream)

	// The fixed system instruction is prepended to the transcript
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, models.ChatRoleSystem, captured.Messages[0].Role)
	assert.Equal(t, services.AssistantSystemPrompt, captured.Messages[0].Content)
	assert.Equal(t, "¿Cuántos estudiantes hay?", captured.Messages[1].Content)
}

func TestChatService_CompleteKeepsExistingSystemPrompt(t *testing.T) {
	var captured upstreamPayload

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(completionBody("ok")))
	}))
	defer upstream.Close()

	svc := services.NewChatService(services.ChatConfig{
		Endpoint: upstream.URL,
		APIKey:   "test-key",
		Model:    "m",
	}, zerolog.Nop())

	svc.Complete(context.Background(), []models.ChatMessage{
		{Role: models.ChatRoleSystem, Content: "instrucción propia"},
		{Role: models.ChatRoleUser, Content: "hola"},
	})

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "instrucción propia", captured.Messages[0].Content)
}

func TestChatService_CompleteFallsBackOnUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	svc := services.NewChatService(services.ChatConfig{
		Endpoint: upstream.URL,
		APIKey:   "test-key",
		Model:    "m",
	}, zerolog.Nop())

	reply := svc.Complete(context.Background(), []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "hola"},
	})
	assert.Equal(t, services.AssistantFallback, reply)
}

func TestChatService_CompleteFallsBackWithoutAPIKey(t *testing.T) {
	svc := services.NewChatService(services.ChatConfig{
		Endpoint: "http://127.0.0.1:1",
		Model:    "m",
	}, zerolog.Nop())

	reply := svc.Complete(context.Background(), []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "hola"},
	})
	assert.Equal(t, services.AssistantFallback, reply)
}

func TestChatService_CompleteFallsBackOnUnreachableEndpoint(t *testing.T) {
	svc := services.NewChatService(services.ChatConfig{
		Endpoint: "http://127.0.0.1:1",
		APIKey:   "test-key",
		Model:    "m",
		Timeout:  time.Second,
	}, zerolog.Nop())

	reply := svc.Complete(context.Background(), []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "hola"},
	})
	assert.Equal(t, services.AssistantFallback, reply)
}

func TestChatService_CompleteFallsBackOnEmptyChoices(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer upstream.Close()

	svc := services.NewChatService(services.ChatConfig{
		Endpoint: upstream.URL,
		APIKey:   "test-key",
		Model:    "m",
	}, zerolog.Nop())

	reply := svc.Complete(context.Background(), []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "hola"},
	})
	assert.Equal(t, services.AssistantFallback, reply)
}
