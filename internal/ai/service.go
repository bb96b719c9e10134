package ai

import (
	"context"
	"time"

	"github.com/omni-inovacoes/omnichatbot/internal/observability/metrics"
	"github.com/omni-inovacoes/omnichatbot/pkg/logging"
)

// apologyReply is returned for any provider or transport failure. The
// adapter never surfaces an error to the orchestrator.
const apologyReply = "Desculpe, ocorreu um erro ao processar sua mensagem. Tente novamente."

// defaultPersonaPrompt is used when the caller supplies no system prompt.
const defaultPersonaPrompt = `Você é um atendente da empresa Omni Inovações.
Sua tarefa é atender o cliente de forma educada, informal e objetiva, como se fosse uma conversa de WhatsApp.
Use sempre o português do Brasil. Evite formalidades.
Escreva mensagens curtas, simpáticas e diretas, com emojis se fizer sentido.`

// Service is the resilience facade over the provider registry. Complete
// always returns user-presentable text: provider faults become a fixed
// apology, reasoning markup is stripped uniformly.
type Service struct {
	registry  *Registry
	maxTokens int
	logger    *logging.Logger
	metrics   *metrics.ChatMetrics
}

// NewService creates the adapter facade.
func NewService(registry *Registry, maxTokens int, m *metrics.ChatMetrics, logger *logging.Logger) *Service {
	if registry == nil {
		panic("ai: registry cannot be nil")
	}
	if maxTokens <= 0 {
		maxTokens = 500
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{registry: registry, maxTokens: maxTokens, metrics: m, logger: logger}
}

// Complete builds the message list (system prompt, prior history, current
// text), dispatches to the backend registered for the model identifier,
// and post-processes the reply. It never fails.
func (s *Service) Complete(ctx context.Context, text, model string, history []ChatMessage, systemPrompt string) string {
	if systemPrompt == "" {
		systemPrompt = defaultPersonaPrompt
	}

	messages := make([]ChatMessage, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: ChatRoleUser, Content: text})

	kind, client := s.registry.Resolve(model)
	if client == nil {
		s.logger.Error("no backend configured for provider", "provider", string(kind), "model", model)
		s.metrics.ObserveProvider(string(kind), "unconfigured", 0)
		return apologyReply
	}

	start := time.Now()
	resp, err := client.Complete(ctx, Request{
		Model:     model,
		System:    []string{systemPrompt},
		Messages:  messages,
		MaxTokens: s.maxTokens,
	})
	elapsed := time.Since(start).Seconds()

	if err != nil {
		s.logger.Warn("provider call failed", "provider", string(kind), "model", model, "error", err)
		s.metrics.ObserveProvider(string(kind), "error", elapsed)
		return apologyReply
	}
	s.metrics.ObserveProvider(string(kind), "ok", elapsed)

	return StripReasoning(resp.Text)
}

// ApologyReply exposes the fixed failure string for callers that need to
// distinguish a degraded turn (e.g. the registration confirmation flow).
func ApologyReply() string {
	return apologyReply
}
