package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const anthropicAPIVersion = "2023-06-01"

// AnthropicClient implements Completer over the Anthropic messages API.
// Unlike OpenAI-style endpoints, the system prompt travels as a top-level
// field instead of a leading message.
type AnthropicClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewAnthropicClient creates a client for the Anthropic messages API.
func NewAnthropicClient(apiKey, baseURL string) *AnthropicClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://api.anthropic.com"
	}
	return &AnthropicClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type anthropicRequest struct {
	Model     string        `json:"model"`
	System    string        `json:"system,omitempty"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []ChatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a messages request and returns the first text block.
func (c *AnthropicClient) Complete(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Model) == "" {
		return Response{}, errors.New("ai: model id is required")
	}

	// System content may arrive either via req.System or embedded in the
	// message list; both are hoisted into the top-level field.
	systemParts := make([]string, 0, len(req.System))
	for _, block := range req.System {
		if strings.TrimSpace(block) != "" {
			systemParts = append(systemParts, block)
		}
	}
	messages := make([]ChatMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		if msg.Role == ChatRoleSystem {
			systemParts = append(systemParts, msg.Content)
			continue
		}
		messages = append(messages, msg)
	}
	if len(messages) == 0 {
		return Response{}, errors.New("ai: anthropic requires at least one message")
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}

	payload, err := json.Marshal(anthropicRequest{
		Model:     req.Model,
		System:    strings.Join(systemParts, "\n\n"),
		MaxTokens: maxTokens,
		Messages:  messages,
	})
	if err != nil {
		return Response{}, fmt.Errorf("ai: anthropic request marshal: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("ai: anthropic request build: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicAPIVersion)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("ai: anthropic request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return Response{}, fmt.Errorf("ai: anthropic response read: %w", err)
	}

	var decoded anthropicResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return Response{}, fmt.Errorf("ai: anthropic response parse: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		if decoded.Error != nil {
			return Response{}, fmt.Errorf("ai: anthropic returned %d: %s", httpResp.StatusCode, decoded.Error.Message)
		}
		return Response{}, fmt.Errorf("ai: anthropic returned %d", httpResp.StatusCode)
	}

	for _, block := range decoded.Content {
		if block.Type == "text" && block.Text != "" {
			return Response{Text: block.Text}, nil
		}
	}
	return Response{}, errors.New("ai: anthropic response contained no text content")
}
