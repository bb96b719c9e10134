package chat

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Fixed conversational templates. Placeholder substitution is the only
// variation: wording stays stable so the frontend can rely on it.
const (
	confirmIdentityTemplate = "Você confirma que seu nome é [nome completo] e seu telefone é [número de telefone]? (sim/não)"
	registeredTemplate      = "Perfeito, [nome completo]! Número [número de telefone] registrado. Como posso te ajudar?"

	deletionPromptReply = "Você tem certeza que deseja excluir sua conta e todo o histórico de conversas? Esta ação não pode ser desfeita. responda (sim/não)"
	deletedReply        = "Sua conta e todo o histórico de conversas foram excluídos com sucesso."
	notDeletedReply     = "Ok, sua conta não foi excluída. Como posso te ajudar?"
)

// Re-prompts after the customer denies the extracted identity.
var identityRetryReplies = []string{
	"Tudo bem. Para continuar, por favor, me informe seu nome completo e telefone celular corretos.",
	"Sem problemas. Pode me informar seu nome e telefone para prosseguirmos?",
}

// Canned onboarding requests, used when the model cannot produce one.
var onboardingReplies = []string{
	"Olá! Para começar nosso atendimento, preciso de seu nome completo e número de celular com DDD.",
	"Para continuar, por favor, me informe seu nome completo e telefone celular com DDD.",
}

// Phrases that open the account deletion flow.
var deletionKeywords = []string{
	"excluir minha conta",
	"delete minha conta",
	"apagar meus dados",
	"remover meu cadastro",
}

func wantsAccountDeletion(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range deletionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var (
	replyRandMu sync.Mutex
	replyRand   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func pickReply(options []string) string {
	replyRandMu.Lock()
	defer replyRandMu.Unlock()
	return options[replyRand.Intn(len(options))]
}

// fillTemplate substitutes the name and phone placeholders, sanitizing
// both values. Missing values leave the message without the placeholder
// instead of showing it literally.
func fillTemplate(template, name, phone string) string {
	out := template

	if clean := sanitizeText(name); clean != "" {
		out = strings.ReplaceAll(out, "[nome completo]", clean)
	} else {
		out = strings.ReplaceAll(out, "[nome completo]", "")
	}

	if clean := sanitizePhone(phone); clean != "" {
		out = strings.ReplaceAll(out, "[número de telefone]", clean)
	} else {
		out = strings.ReplaceAll(out, "[número de telefone]", "")
	}

	out = strings.ReplaceAll(out, "  ", " ")
	return strings.TrimSpace(out)
}

// sanitizeText strips characters that could break markup or templates.
func sanitizeText(text string) string {
	r := strings.NewReplacer(`"`, "", "'", "", "<", "", ">", "", "&", "", "{", "", "}", "")
	return strings.TrimSpace(r.Replace(text))
}

// sanitizePhone keeps digits only.
func sanitizePhone(phone string) string {
	var b strings.Builder
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
