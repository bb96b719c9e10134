package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/omni-inovacoes/omnichatbot/pkg/logging"
)

// The knowledge base is three plain-text documents. Missing files are
// skipped silently; an empty knowledge base still yields a valid prompt.
var documentNames = []string{"empresa.txt", "produto.txt", "faq.txt"}

const defaultTTL = 5 * time.Minute

const promptTemplate = `Você é um assistente virtual da empresa Omni Inovações.
Sua única função é responder a perguntas sobre a empresa e sobre nosso produto, o OmniChatBot, com base estritamente na base de conhecimento fornecida abaixo.
Não responda a perguntas que não possam ser respondidas com as informações a seguir.

Se a pergunta do usuário for sobre qualquer outro tópico, responda exatamente com a seguinte frase:
"Desculpe, só posso responder perguntas relacionadas à nossa empresa ou ao nosso produto. Como posso te ajudar dentro desse escopo?"

Se a pergunta for ambígua, peça para o usuário reformular a pergunta em relação à empresa ou ao produto, com a seguinte frase:
"Poderia reformular sua pergunta relacionada ao OmniChatBot ou à nossa empresa?"

Base de Conhecimento:
---
%s
---`

// Cache loads and merges the knowledge documents, serving the result for a
// freshness window before re-reading from disk. It is safe for concurrent
// use; racing refreshes inside the window only recompute the same value.
type Cache struct {
	dir    string
	ttl    time.Duration
	logger *logging.Logger

	mu       sync.Mutex
	cached   string
	loaded   bool
	readTime time.Time
}

// NewCache creates a knowledge base cache over the given directory.
func NewCache(dir string, ttl time.Duration, logger *logging.Logger) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Cache{dir: dir, ttl: ttl, logger: logger}
}

// GetSystemPrompt returns the persona-and-guardrail prompt wrapping the
// merged knowledge base, refreshing from disk when the cache is stale.
func (c *Cache) GetSystemPrompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded || time.Since(c.readTime) > c.ttl {
		c.cached = c.load()
		c.loaded = true
		c.readTime = time.Now()
	}

	return fmt.Sprintf(promptTemplate, c.cached)
}

func (c *Cache) load() string {
	var sb strings.Builder
	for _, name := range documentNames {
		data, err := os.ReadFile(filepath.Join(c.dir, name))
		if err != nil {
			if !os.IsNotExist(err) {
				c.logger.Warn("knowledge document unreadable", "document", name, "error", err)
			}
			continue
		}
		sb.Write(data)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
