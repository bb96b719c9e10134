package ai

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

type fakeModelLister struct {
	list openai.ModelsList
	err  error
}

func (f *fakeModelLister) ListModels(_ context.Context) (openai.ModelsList, error) {
	return f.list, f.err
}

func TestCatalogListStaticOnly(t *testing.T) {
	c := newCatalogWithAPI(nil, nil)
	models := c.List(context.Background())

	assert.Len(t, models, len(StaticCatalog()))
	assert.Equal(t, "gpt-3.5-turbo", models[0].ID)
}

func TestCatalogListAppendsLocalModels(t *testing.T) {
	lister := &fakeModelLister{list: openai.ModelsList{Models: []openai.Model{
		{ID: "phi-3-mini-4k-instruct"},
		{ID: ""},
		{ID: "qwen2.5-7b-instruct"},
	}}}
	c := newCatalogWithAPI(lister, nil)

	models := c.List(context.Background())
	assert.Len(t, models, len(StaticCatalog())+2)

	last := models[len(models)-1]
	assert.Equal(t, "qwen2.5-7b-instruct", last.ID)
	assert.Equal(t, "local", last.Vendor)
	assert.Equal(t, ProviderLocal, last.Provider)
}

func TestCatalogListProbeFailureDegrades(t *testing.T) {
	lister := &fakeModelLister{err: errors.New("connection refused")}
	c := newCatalogWithAPI(lister, nil)

	models := c.List(context.Background())
	assert.Len(t, models, len(StaticCatalog()))
}
