package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripReasoningRemovesTagBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "think block",
			input: "<think>o usuário quer o horário</think>Atendemos de 9h às 18h.",
			want:  "Atendemos de 9h às 18h.",
		},
		{
			name:  "uppercase tag",
			input: "<THINKING>raciocínio</THINKING>Olá!",
			want:  "Olá!",
		},
		{
			name:  "multiline reasoning block",
			input: "<reasoning>\nlinha um\nlinha dois\n</reasoning>\n\nResposta final.",
			want:  "Resposta final.",
		},
		{
			name:  "multiple blocks",
			input: "<thought>a</thought>Oi<internal>b</internal> tudo bem?<process>c</process>",
			want:  "Oi tudo bem?",
		},
		{
			name:  "no tags untouched",
			input: "Mensagem normal sem marcação.",
			want:  "Mensagem normal sem marcação.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripReasoning(tt.input))
		})
	}
}

func TestStripReasoningCollapsesBlankLines(t *testing.T) {
	got := StripReasoning("linha um\n\n\n\nlinha dois")
	assert.Equal(t, "linha um\nlinha dois", got)
}

func TestStripReasoningEmptyResultFallsBack(t *testing.T) {
	assert.Equal(t, emptyReplyFallback, StripReasoning("<think>só pensamento</think>"))
	assert.Equal(t, emptyReplyFallback, StripReasoning("   \n\n  "))
}

func TestStripReasoningIsIdempotent(t *testing.T) {
	inputs := []string{
		"<think>x</think>Resposta\n\n\ncom linhas.",
		"Texto simples.",
		"<thinking>a</thinking>",
	}
	for _, in := range inputs {
		once := StripReasoning(in)
		assert.Equal(t, once, StripReasoning(once))
	}
}
