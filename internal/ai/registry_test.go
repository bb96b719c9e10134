package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticCompleter struct {
	text string
}

func (s *staticCompleter) Complete(_ context.Context, _ Request) (Response, error) {
	return Response{Text: s.text}, nil
}

func TestRegistryResolvesCatalogModels(t *testing.T) {
	openaiClient := &staticCompleter{text: "openai"}
	anthropicClient := &staticCompleter{text: "anthropic"}
	reg := NewRegistry(map[ProviderKind]Completer{
		ProviderOpenAI:    openaiClient,
		ProviderAnthropic: anthropicClient,
	})

	kind, client := reg.Resolve("gpt-4o")
	assert.Equal(t, ProviderOpenAI, kind)
	assert.Same(t, openaiClient, client)

	kind, client = reg.Resolve("claude-opus-4-0")
	assert.Equal(t, ProviderAnthropic, kind)
	assert.Same(t, anthropicClient, client)

	kind, _ = reg.Resolve("gemini-2.0-flash")
	assert.Equal(t, ProviderGemini, kind)

	kind, _ = reg.Resolve("grok-3-beta")
	assert.Equal(t, ProviderGrok, kind)
}

func TestRegistryPrefixFallback(t *testing.T) {
	reg := NewRegistry(nil)

	tests := []struct {
		model string
		want  ProviderKind
	}{
		{"gpt-5-preview", ProviderOpenAI},
		{"o4-mini", ProviderOpenAI},
		{"claude-9-experimental", ProviderAnthropic},
		{"gemini-3.0-pro", ProviderGemini},
		{"grok-4", ProviderGrok},
		{"phi-3-mini-4k-instruct", ProviderLocal},
		{"qwen2.5-7b-instruct", ProviderLocal},
	}
	for _, tt := range tests {
		kind, _ := reg.Resolve(tt.model)
		assert.Equal(t, tt.want, kind, "model %s", tt.model)
	}
}

func TestRegistryNilBackend(t *testing.T) {
	reg := NewRegistry(map[ProviderKind]Completer{})
	kind, client := reg.Resolve("gpt-4")
	assert.Equal(t, ProviderOpenAI, kind)
	assert.Nil(t, client)
}
