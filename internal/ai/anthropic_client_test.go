package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicClientComplete(t *testing.T) {
	var captured anthropicRequest
	var headers http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/messages", r.URL.Path)
		headers = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": "Olá! Como posso ajudar?"},
			},
		})
	}))
	defer srv.Close()

	client := NewAnthropicClient("test-key", srv.URL)
	resp, err := client.Complete(context.Background(), Request{
		Model:  "claude-sonnet-4-0",
		System: []string{"persona"},
		Messages: []ChatMessage{
			{Role: ChatRoleSystem, Content: "regras extras"},
			{Role: ChatRoleUser, Content: "oi"},
		},
		MaxTokens: 300,
	})

	require.NoError(t, err)
	assert.Equal(t, "Olá! Como posso ajudar?", resp.Text)

	assert.Equal(t, "test-key", headers.Get("x-api-key"))
	assert.Equal(t, anthropicAPIVersion, headers.Get("anthropic-version"))

	assert.Equal(t, "claude-sonnet-4-0", captured.Model)
	assert.Equal(t, "persona\n\nregras extras", captured.System)
	assert.Equal(t, 300, captured.MaxTokens)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, ChatRoleUser, captured.Messages[0].Role)
}

func TestAnthropicClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"type": "authentication_error", "message": "invalid x-api-key"}}`))
	}))
	defer srv.Close()

	client := NewAnthropicClient("bad-key", srv.URL)
	_, err := client.Complete(context.Background(), Request{
		Model:    "claude-sonnet-4-0",
		Messages: []ChatMessage{{Role: ChatRoleUser, Content: "oi"}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid x-api-key")
}

func TestAnthropicClientRequiresMessages(t *testing.T) {
	client := NewAnthropicClient("key", "http://localhost:0")
	_, err := client.Complete(context.Background(), Request{Model: "claude-sonnet-4-0"})
	assert.Error(t, err)
}
