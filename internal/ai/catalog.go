package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/omni-inovacoes/omnichatbot/pkg/logging"
)

// Model describes one selectable chat model.
type Model struct {
	ID       string       `json:"id"`
	Name     string       `json:"nome"`
	Vendor   string       `json:"tipo"`
	Provider ProviderKind `json:"-"`
}

// StaticCatalog returns the fixed set of hosted models offered to callers.
func StaticCatalog() []Model {
	return []Model{
		{ID: "gpt-3.5-turbo", Name: "GPT-3.5 Turbo", Vendor: "chatgpt", Provider: ProviderOpenAI},
		{ID: "gpt-3.5-turbo-16k", Name: "GPT-3.5 Turbo 16k", Vendor: "chatgpt", Provider: ProviderOpenAI},
		{ID: "gpt-4", Name: "GPT-4", Vendor: "chatgpt", Provider: ProviderOpenAI},
		{ID: "gpt-4-turbo", Name: "GPT-4 Turbo", Vendor: "chatgpt", Provider: ProviderOpenAI},
		{ID: "gpt-4o", Name: "GPT-4o", Vendor: "chatgpt", Provider: ProviderOpenAI},
		{ID: "gpt-4o-mini", Name: "GPT-4o Mini", Vendor: "chatgpt", Provider: ProviderOpenAI},

		{ID: "claude-3-opus-latest", Name: "Claude 3 Opus", Vendor: "claude", Provider: ProviderAnthropic},
		{ID: "claude-3-sonnet-latest", Name: "Claude 3 Sonnet", Vendor: "claude", Provider: ProviderAnthropic},
		{ID: "claude-3-haiku-latest", Name: "Claude 3 Haiku", Vendor: "claude", Provider: ProviderAnthropic},
		{ID: "claude-sonnet-4-0", Name: "Claude Sonnet 4", Vendor: "claude", Provider: ProviderAnthropic},
		{ID: "claude-opus-4-0", Name: "Claude Opus 4", Vendor: "claude", Provider: ProviderAnthropic},

		{ID: "gemini-2.0-flash", Name: "Gemini 2.0 Flash", Vendor: "gemini", Provider: ProviderGemini},
		{ID: "grok-3-beta", Name: "Grok 3 Beta", Vendor: "grok", Provider: ProviderGrok},
	}
}

type modelListAPI interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// Catalog serves the model list: the static set plus a best-effort probe
// of the local inference endpoint. Probe failures degrade to the static
// catalog only.
type Catalog struct {
	local  modelListAPI
	logger *logging.Logger
}

// NewCatalog builds a catalog. local may be nil to skip the probe.
func NewCatalog(localBaseURL string, logger *logging.Logger) *Catalog {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Catalog{logger: logger}
	if localBaseURL != "" {
		cfg := openai.DefaultConfig("")
		cfg.BaseURL = localBaseURL
		c.local = openai.NewClientWithConfig(cfg)
	}
	return c
}

func newCatalogWithAPI(local modelListAPI, logger *logging.Logger) *Catalog {
	if logger == nil {
		logger = logging.Default()
	}
	return &Catalog{local: local, logger: logger}
}

// List returns the ordered model catalog.
func (c *Catalog) List(ctx context.Context) []Model {
	models := StaticCatalog()

	if c.local == nil {
		return models
	}
	listed, err := c.local.ListModels(ctx)
	if err != nil {
		c.logger.Debug("local model probe failed", "error", err)
		return models
	}
	for _, m := range listed.Models {
		if m.ID == "" {
			continue
		}
		models = append(models, Model{ID: m.ID, Name: m.ID, Vendor: "local", Provider: ProviderLocal})
	}
	return models
}
