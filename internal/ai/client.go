package ai

import "context"

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is the internal message representation shared by all providers.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a normalized chat-completion request.
type Request struct {
	Model       string
	System      []string
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float32
}

// Response is a normalized chat-completion response.
type Response struct {
	Text string
}

// Completer sends one chat-completion request to a single provider backend.
type Completer interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
