package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type chatCompletionAPI interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClient implements Completer over any OpenAI-style chat-completions
// endpoint. The same client serves both api.openai.com and the local
// inference endpoint, which exposes an identical request/response shape.
type OpenAIClient struct {
	client chatCompletionAPI

	// temperature overrides the provider default when non-zero. The local
	// endpoint uses a lowered sampling temperature.
	temperature float32
}

// NewOpenAIClient creates a client for the hosted OpenAI API.
func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg)}
}

// NewLocalClient creates a client for a locally reachable OpenAI-compatible
// inference endpoint (e.g. LM Studio). No API key is required.
func NewLocalClient(baseURL string) *OpenAIClient {
	cfg := openai.DefaultConfig("")
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg), temperature: 0.2}
}

func newOpenAIClientWithAPI(api chatCompletionAPI, temperature float32) *OpenAIClient {
	return &OpenAIClient{client: api, temperature: temperature}
}

// Complete sends a chat-completion request and returns the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Model) == "" {
		return Response{}, errors.New("ai: model id is required")
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+len(req.System))
	for _, block := range req.System {
		if strings.TrimSpace(block) == "" {
			continue
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: block,
		})
	}
	for _, msg := range req.Messages {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	request := openai.ChatCompletionRequest{
		Model:     req.Model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	}
	if req.Temperature > 0 {
		request.Temperature = req.Temperature
	} else if c.temperature > 0 {
		request.Temperature = c.temperature
	}

	resp, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return Response{}, fmt.Errorf("ai: chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, errors.New("ai: completion returned no choices")
	}
	return Response{Text: resp.Choices[0].Message.Content}, nil
}
