package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCompleter struct {
	lastReq Request
	text    string
	err     error
}

func (r *recordingCompleter) Complete(_ context.Context, req Request) (Response, error) {
	r.lastReq = req
	if r.err != nil {
		return Response{}, r.err
	}
	return Response{Text: r.text}, nil
}

func newTestService(c Completer) *Service {
	reg := NewRegistry(map[ProviderKind]Completer{ProviderLocal: c})
	return NewService(reg, 500, nil, nil)
}

func TestServiceCompleteBuildsRequest(t *testing.T) {
	backend := &recordingCompleter{text: "tudo certo"}
	svc := newTestService(backend)

	history := []ChatMessage{
		{Role: ChatRoleUser, Content: "oi"},
		{Role: ChatRoleAssistant, Content: "olá!"},
	}
	got := svc.Complete(context.Background(), "qual o horário?", "phi-3-mini-4k-instruct", history, "persona")

	assert.Equal(t, "tudo certo", got)
	require.Len(t, backend.lastReq.Messages, 3)
	assert.Equal(t, "qual o horário?", backend.lastReq.Messages[2].Content)
	assert.Equal(t, ChatRoleUser, backend.lastReq.Messages[2].Role)
	assert.Equal(t, []string{"persona"}, backend.lastReq.System)
	assert.Equal(t, 500, backend.lastReq.MaxTokens)
}

func TestServiceCompleteDefaultsSystemPrompt(t *testing.T) {
	backend := &recordingCompleter{text: "ok"}
	svc := newTestService(backend)

	svc.Complete(context.Background(), "oi", "local-model", nil, "")

	require.Len(t, backend.lastReq.System, 1)
	assert.Equal(t, defaultPersonaPrompt, backend.lastReq.System[0])
}

func TestServiceCompleteApologizesOnError(t *testing.T) {
	backend := &recordingCompleter{err: errors.New("connection refused")}
	svc := newTestService(backend)

	got := svc.Complete(context.Background(), "oi", "local-model", nil, "")
	assert.Equal(t, ApologyReply(), got)
}

func TestServiceCompleteApologizesWhenProviderUnconfigured(t *testing.T) {
	svc := NewService(NewRegistry(nil), 500, nil, nil)

	got := svc.Complete(context.Background(), "oi", "gpt-4o", nil, "")
	assert.Equal(t, ApologyReply(), got)
}

func TestServiceCompleteStripsReasoning(t *testing.T) {
	backend := &recordingCompleter{text: "<think>racional</think>Resposta limpa."}
	svc := newTestService(backend)

	got := svc.Complete(context.Background(), "oi", "local-model", nil, "")
	assert.Equal(t, "Resposta limpa.", got)
}
