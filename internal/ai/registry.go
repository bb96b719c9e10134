package ai

import "strings"

// ProviderKind identifies one of the supported provider backends.
type ProviderKind string

const (
	ProviderOpenAI    ProviderKind = "openai"
	ProviderAnthropic ProviderKind = "anthropic"
	ProviderGemini    ProviderKind = "gemini"
	ProviderGrok      ProviderKind = "grok"
	ProviderLocal     ProviderKind = "local"
)

// Registry maps model identifiers to provider backends. Known catalog
// models resolve through an explicit table; unknown identifiers fall back
// to prefix rules, and anything unrecognized is routed to the local
// inference endpoint.
type Registry struct {
	clients map[ProviderKind]Completer
	models  map[string]ProviderKind
}

// NewRegistry builds a registry over the given backends. Backends may be
// nil; Resolve then returns a nil Completer for that provider and the
// caller decides how to degrade.
func NewRegistry(clients map[ProviderKind]Completer) *Registry {
	models := make(map[string]ProviderKind)
	for _, m := range StaticCatalog() {
		models[m.ID] = m.Provider
	}
	return &Registry{clients: clients, models: models}
}

// Resolve returns the provider kind and backend for a model identifier.
func (r *Registry) Resolve(model string) (ProviderKind, Completer) {
	kind, ok := r.models[model]
	if !ok {
		kind = kindFromPrefix(model)
	}
	return kind, r.clients[kind]
}

func kindFromPrefix(model string) ProviderKind {
	switch {
	case strings.HasPrefix(model, "gpt-"), strings.HasPrefix(model, "o4-"):
		return ProviderOpenAI
	case strings.HasPrefix(model, "claude-"):
		return ProviderAnthropic
	case strings.HasPrefix(model, "gemini-"):
		return ProviderGemini
	case strings.HasPrefix(model, "grok-"):
		return ProviderGrok
	default:
		return ProviderLocal
	}
}
