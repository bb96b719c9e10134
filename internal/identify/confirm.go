package identify

import (
	"context"
	"fmt"
	"strings"

	"github.com/omni-inovacoes/omnichatbot/internal/ai"
)

// Strict vocabularies. The deletion flow depends on these being exact:
// loose phrasing must never destroy an account.
var affirmativeTokens = map[string]bool{
	"sim": true, "yes": true, "s": true, "ok": true,
	"de acordo": true, "confirmo": true, "aceito": true,
}

var yesNoTokens = map[string]bool{
	"sim": true, "não": true, "nao": true,
	"yes": true, "no": true, "s": true, "n": true,
}

// IsYesNoToken reports whether the text is a bare yes/no token after
// case and space normalization.
func IsYesNoToken(text string) bool {
	return yesNoTokens[normalizeToken(text)]
}

// IsStrictAffirmative reports whether the text exactly matches the fixed
// affirmative vocabulary.
func IsStrictAffirmative(text string) bool {
	return affirmativeTokens[normalizeToken(text)]
}

func normalizeToken(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

const confirmationPersona = `Você é um assistente virtual da Omni Inovações, especializado em entender confirmações de clientes.
Sua missão é identificar de forma precisa qualquer manifestação de acordo, consentimento ou aprovação, mesmo que expressem isso sem usar literalmente "sim". Exemplos: concordo, aceito, perfeito, está bom, fechado, combinado, vamos em frente, estou de acordo, etc.`

const confirmationTask = `Dada a Mensagem do Usuário abaixo, analise se há uma confirmação positiva de operação.
Considere como confirmação qualquer termo ou expressão que indique entendimento e anuência (não apenas 'sim').
Se encontrar confirmação, retorne exatamente 'SIM'.
Caso contrário, retorne 'NÃO'.
Mensagem do Usuário: %s`

const defaultConfirmationModel = "phi-3-mini-4k-instruct"

// Classifier judges whether free text expresses consent. The registration
// flow favors recall: natural variations ("perfeito", "combinado") count.
type Classifier struct {
	ai    *ai.Service
	model string
}

// NewClassifier creates a semantic confirmation classifier. model selects
// which backend judges the text; empty picks the default local model.
func NewClassifier(svc *ai.Service, model string) *Classifier {
	if svc == nil {
		panic("identify: ai service cannot be nil")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultConfirmationModel
	}
	return &Classifier{ai: svc, model: model}
}

// Affirmed reports whether the text expresses agreement. Exact vocabulary
// matches short-circuit the provider call; otherwise the model decides.
func (c *Classifier) Affirmed(ctx context.Context, text string) bool {
	if IsStrictAffirmative(text) {
		return true
	}

	reply := c.ai.Complete(ctx, fmt.Sprintf(confirmationTask, text), c.model, nil, confirmationPersona)
	if reply == ai.ApologyReply() {
		// Degraded provider: fall back to the strict vocabulary, which
		// already said no.
		return false
	}
	return strings.Contains(strings.ToUpper(reply), "SIM")
}
