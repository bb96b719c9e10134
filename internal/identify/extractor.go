package identify

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/omni-inovacoes/omnichatbot/internal/ai"
	"github.com/omni-inovacoes/omnichatbot/pkg/logging"
)

// Identity is a (name, phone) candidate recovered from free text. Both
// fields empty means no identity data was found.
type Identity struct {
	Name  string `json:"nome"`
	Phone string `json:"telefone"`
}

// Empty reports whether nothing was extracted.
func (id Identity) Empty() bool {
	return id.Name == "" && id.Phone == ""
}

var (
	// Brazilian mobile: 2-digit area code + leading 9 + 8 digits.
	phoneRE = regexp.MustCompile(`\b(\d{2}9\d{8})\b`)

	// Two or more consecutive capitalized words (Portuguese letters).
	nameRE = regexp.MustCompile(`\b([A-ZÁÀÂÃÉÈÊÍÌÎÓÒÔÕÚÙÛÇ][a-záàâãéèêíìîóòôõúùûç]+(?:\s+[A-ZÁÀÂÃÉÈÊÍÌÎÓÒÔÕÚÙÛÇ][a-záàâãéèêíìîóòôõúùûç]+)+)\b`)

	jsonObjectRE = regexp.MustCompile(`(?is)\{[^{}]*"nome"[^{}]*"telefone"[^{}]*\}`)
	nameFieldRE  = regexp.MustCompile(`(?i)"nome"\s*:\s*"([^"]*)"`)
	phoneFieldRE = regexp.MustCompile(`(?i)"telefone"\s*:\s*"([^"]*)"`)

	nonDigitRE = regexp.MustCompile(`\D`)
)

// Filler words dropped before guessing a name from leftover tokens.
var fillerWords = map[string]bool{
	"meu": true, "me": true, "chamo": true, "nome": true,
	"sou": true, "telefone": true, "celular": true, "número": true,
}

const extractionPersona = `Você é um assistente da empresa Omni Inovações.
IMPORTANTE: Sua tarefa é extrair APENAS o nome e telefone que estão explicitamente mencionados na mensagem do cliente.
NUNCA invente ou adicione dados que não estão na mensagem original.
Se não encontrar nome ou telefone na mensagem, retorne strings vazias.
Responda APENAS com o JSON solicitado, sem explicações ou pensamentos.`

const extractionTask = `Analise a mensagem do cliente e extraia APENAS os dados que estão explicitamente mencionados:
Mensagem do cliente: "%s"

Regras:
1. Use APENAS os dados que estão na mensagem
2. NÃO invente nomes ou telefones
3. Se não encontrar um dado, deixe vazio
4. Retorne APENAS o JSON no formato: {"nome": "nome_extraido", "telefone": "telefone_extraido"}

Exemplo de resposta quando encontrar dados: {"nome": "JOSE DA SILVA", "telefone": "61999988887"}
Exemplo de resposta quando NÃO encontrar dados: {"nome": "", "telefone": ""}`

// Extractor recovers identity candidates from free-form text. The LLM
// stage is the primary path; the deterministic stage backs it up when the
// provider call degrades.
type Extractor struct {
	ai     *ai.Service
	logger *logging.Logger
}

// NewExtractor creates an identification extractor.
func NewExtractor(svc *ai.Service, logger *logging.Logger) *Extractor {
	if svc == nil {
		panic("identify: ai service cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Extractor{ai: svc, logger: logger}
}

// Extract runs the AI extraction stage against the given model, degrading
// to the deterministic stage when the provider call fails outright.
func (e *Extractor) Extract(ctx context.Context, text, model string) Identity {
	reply := e.ai.Complete(ctx, fmt.Sprintf(extractionTask, text), model, nil, extractionPersona)
	if reply == ai.ApologyReply() {
		e.logger.Warn("extraction provider call degraded, using pattern stage", "model", model)
		return ExtractDeterministic(text)
	}

	id := parseExtractionReply(reply)
	if id.Name == "" {
		// A phone without a name is not enough to open the confirmation
		// round-trip; treat it as nothing extracted.
		return Identity{}
	}
	id.Phone = verifiedPhone(id.Phone, text)
	return id
}

// parseExtractionReply recovers the identity object from a raw model
// reply: markdown fences are removed, a JSON object carrying both keys is
// located by pattern, and quoted-key recovery backs up a failed parse.
func parseExtractionReply(reply string) Identity {
	cleaned := strings.ReplaceAll(reply, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	if match := jsonObjectRE.FindString(cleaned); match != "" {
		cleaned = match
	}

	var id Identity
	if err := json.Unmarshal([]byte(cleaned), &id); err == nil {
		return id
	}

	if m := nameFieldRE.FindStringSubmatch(cleaned); len(m) == 2 {
		id.Name = m[1]
	}
	if m := phoneFieldRE.FindStringSubmatch(cleaned); len(m) == 2 {
		id.Phone = m[1]
	}
	return id
}

// verifiedPhone keeps a phone only if its digits appear in the source
// text. The extraction prompt forbids invented data; this enforces it.
func verifiedPhone(phone, source string) string {
	digits := nonDigitRE.ReplaceAllString(phone, "")
	if digits == "" {
		return ""
	}
	if !strings.Contains(nonDigitRE.ReplaceAllString(source, ""), digits) {
		return ""
	}
	return digits
}

// ExtractDeterministic runs the cheap pattern stage: phone by regex, name
// by capitalized-words regex with a filler-word token guess as fallback.
func ExtractDeterministic(text string) Identity {
	var id Identity

	if m := phoneRE.FindStringSubmatch(text); len(m) == 2 {
		id.Phone = m[1]
	}

	if m := nameRE.FindStringSubmatch(text); len(m) == 2 {
		id.Name = m[1]
		return id
	}

	// No capitalized name found; drop filler words and phone-looking
	// tokens, then take the first two or three leftovers as a guess.
	var words []string
	for _, w := range strings.Fields(text) {
		if len([]rune(w)) < 2 || phoneRE.MatchString(w) || fillerWords[strings.ToLower(w)] {
			continue
		}
		words = append(words, w)
	}
	if len(words) >= 3 {
		id.Name = strings.Join(words[:3], " ")
	} else if len(words) == 2 {
		id.Name = strings.Join(words[:2], " ")
	}

	return id
}
