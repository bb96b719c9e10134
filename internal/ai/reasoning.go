package ai

import (
	"regexp"
	"strings"
)

// Some backing models emit visible chain-of-thought wrapped in delimiter
// tags. That markup must never reach the end user, so every provider reply
// passes through StripReasoning before leaving the adapter.
var reasoningTagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<think>.*?</think>`),
	regexp.MustCompile(`(?is)<thinking>.*?</thinking>`),
	regexp.MustCompile(`(?is)<reasoning>.*?</reasoning>`),
	regexp.MustCompile(`(?is)<thought>.*?</thought>`),
	regexp.MustCompile(`(?is)<internal>.*?</internal>`),
	regexp.MustCompile(`(?is)<process>.*?</process>`),
}

var blankLinesRE = regexp.MustCompile(`\n\s*\n`)

// emptyReplyFallback is returned when stripping leaves nothing to show.
const emptyReplyFallback = "Desculpe, não consegui processar sua solicitação. Pode tentar novamente?"

// StripReasoning removes reasoning-tag blocks and their content from a
// provider reply, collapses repeated blank lines, and trims. If nothing
// remains, a fixed try-again notice is substituted. The function is
// idempotent.
func StripReasoning(reply string) string {
	cleaned := reply
	for _, pattern := range reasoningTagPatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}

	cleaned = blankLinesRE.ReplaceAllString(cleaned, "\n")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return emptyReplyFallback
	}
	return cleaned
}
