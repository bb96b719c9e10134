package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/omni-inovacoes/omnichatbot/internal/ai"
	"github.com/omni-inovacoes/omnichatbot/internal/customers"
	"github.com/omni-inovacoes/omnichatbot/internal/identify"
	"github.com/omni-inovacoes/omnichatbot/internal/knowledge"
	"github.com/omni-inovacoes/omnichatbot/internal/observability/metrics"
	"github.com/omni-inovacoes/omnichatbot/pkg/logging"
)

// historyWindow bounds how far back the transcript context reaches.
const historyWindow = 24 * time.Hour

const onboardingPersona = `Você é um atendente da empresa Omni Inovações.
Sua tarefa é atender o cliente de forma educada, informal e objetiva, como se fosse em uma conversa de WhatsApp.
Responda **APENAS** com a mensagem de usuário pedida, sem saudação longa, sem assinatura extra, sem explicações.
Use sempre o português do Brasil. Evite formalidades.
Escreva mensagens curtas, simpáticas e diretas, com emojis se fizer sentido.`

const onboardingTask = `Crie uma mensagem curta e simpatica de resposta para o WhatsApp simples pedindo ao cliente que informe:
- Nome completo
- Telefone celular (com DDD).

#Exemplo de mensagem curta e aceitavel
- Olá! 😊
Sou da Omni Inovações e estou aqui para te ajudar!
Para darmos início ao seu atendimento, preciso de algumas informações básicas:
📝 Nome completo:
📱 Telefone celular (com DDD):
Aguardo seu retorno!
`

// Service orchestrates the conversation flows: identification, account
// registration, account deletion and knowledge-grounded Q&A.
type Service struct {
	repo       customers.Repository
	ai         *ai.Service
	extractor  *identify.Extractor
	classifier *identify.Classifier
	knowledge  *knowledge.Cache
	metrics    *metrics.ChatMetrics
	logger     *logging.Logger
	now        func() time.Time
}

// NewService wires the conversation orchestrator.
func NewService(
	repo customers.Repository,
	aiSvc *ai.Service,
	extractor *identify.Extractor,
	classifier *identify.Classifier,
	kb *knowledge.Cache,
	m *metrics.ChatMetrics,
	logger *logging.Logger,
) *Service {
	if repo == nil || aiSvc == nil || extractor == nil || classifier == nil || kb == nil {
		panic("chat: all collaborators are required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:       repo,
		ai:         aiSvc,
		extractor:  extractor,
		classifier: classifier,
		knowledge:  kb,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// Process routes one inbound message through the conversation state
// machine and returns the reply envelope. Errors are reserved for
// persistence faults the caller should surface as a system failure.
func (s *Service) Process(ctx context.Context, msg InboundMessage) (*ConversationReply, error) {
	if msg.IdentityConfirmed && msg.Phone != "" {
		customer, err := s.repo.FindByPhone(ctx, msg.Phone)
		switch {
		case err == nil:
			return s.processIdentified(ctx, msg, customer)
		case errors.Is(err, customers.ErrCustomerNotFound):
			// Stale client state: the account no longer exists. Restart
			// identification.
		default:
			return nil, fmt.Errorf("chat: customer lookup: %w", err)
		}
	}
	return s.processUnidentified(ctx, msg)
}

func (s *Service) processIdentified(ctx context.Context, msg InboundMessage, customer *customers.Customer) (*ConversationReply, error) {
	if customer.PendingDeletionConfirmation {
		return s.resolveDeletion(ctx, msg, customer)
	}
	if wantsAccountDeletion(msg.Text) {
		return s.promptDeletion(ctx, customer)
	}
	return s.answerFromKnowledge(ctx, msg, customer)
}

// resolveDeletion settles a pending account deletion. Only the strict
// affirmative vocabulary destroys the account; anything else cancels.
func (s *Service) resolveDeletion(ctx context.Context, msg InboundMessage, customer *customers.Customer) (*ConversationReply, error) {
	if identify.IsStrictAffirmative(msg.Text) {
		if err := s.repo.Delete(ctx, customer); err != nil {
			return nil, fmt.Errorf("chat: delete account: %w", err)
		}
		s.logger.Info("account deleted", "customer_id", customer.ID)
		s.metrics.ObserveScenario("deletion_confirmed")
		return &ConversationReply{
			Success:        true,
			Message:        deletedReply,
			AccountDeleted: true,
		}, nil
	}

	customer.PendingDeletionConfirmation = false
	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("chat: cancel deletion: %w", err)
	}
	s.metrics.ObserveScenario("deletion_cancelled")
	return &ConversationReply{Success: true, Message: notDeletedReply}, nil
}

func (s *Service) promptDeletion(ctx context.Context, customer *customers.Customer) (*ConversationReply, error) {
	customer.PendingDeletionConfirmation = true
	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("chat: flag deletion: %w", err)
	}
	s.metrics.ObserveScenario("deletion_prompt")
	return &ConversationReply{Success: true, Message: deletionPromptReply}, nil
}

// answerFromKnowledge runs the knowledge-grounded Q&A turn: recent
// transcript as context, company documents as system prompt, both sides
// of the exchange persisted.
func (s *Service) answerFromKnowledge(ctx context.Context, msg InboundMessage, customer *customers.Customer) (*ConversationReply, error) {
	since := s.now().Add(-historyWindow)
	turns, err := s.repo.ListTurnsSince(ctx, customer.ID, since)
	if err != nil {
		return nil, fmt.Errorf("chat: load history: %w", err)
	}

	history := make([]ai.ChatMessage, 0, len(turns))
	entries := make([]HistoryEntry, 0, len(turns)+2)
	for _, t := range turns {
		role := ai.ChatRoleUser
		if t.Origin == customers.OriginBot {
			role = ai.ChatRoleAssistant
		}
		history = append(history, ai.ChatMessage{Role: role, Content: t.Text})
		entries = append(entries, HistoryEntry{Text: t.Text, Origin: t.Origin, CreatedAt: t.CreatedAt})
	}

	if err := s.repo.AppendTurn(ctx, &customers.Turn{
		CustomerID: customer.ID,
		Text:       msg.Text,
		Origin:     customers.OriginCustomer,
		CreatedAt:  s.now(),
	}); err != nil {
		return nil, fmt.Errorf("chat: persist customer turn: %w", err)
	}

	reply := s.ai.Complete(ctx, msg.Text, msg.Model, history, s.knowledge.GetSystemPrompt())

	if err := s.repo.AppendTurn(ctx, &customers.Turn{
		CustomerID: customer.ID,
		Text:       reply,
		Origin:     customers.OriginBot,
		CreatedAt:  s.now(),
	}); err != nil {
		return nil, fmt.Errorf("chat: persist bot turn: %w", err)
	}

	entries = append(entries,
		HistoryEntry{Text: msg.Text, Origin: customers.OriginCustomer, CreatedAt: s.now()},
		HistoryEntry{Text: reply, Origin: customers.OriginBot, CreatedAt: s.now()},
	)

	s.metrics.ObserveScenario("knowledge_qa")
	return &ConversationReply{
		Success:            true,
		Message:            reply,
		CustomerIdentified: true,
		IdentityConfirmed:  true,
		Name:               customer.Name,
		Phone:              customer.Phone,
		History:            entries,
	}, nil
}

// processUnidentified walks the identification scenarios in priority
// order: extracted identity, confirmed registration, denial re-prompt,
// onboarding fallback.
func (s *Service) processUnidentified(ctx context.Context, msg InboundMessage) (*ConversationReply, error) {
	extracted := s.extractor.Extract(ctx, msg.Text, msg.Model)

	// Scenario 1: the message carried identity data. Echo it back for
	// confirmation without persisting anything.
	if extracted.Phone != "" {
		s.metrics.ObserveScenario("confirm_identity")
		return &ConversationReply{
			Success:         true,
			Message:         fillTemplate(confirmIdentityTemplate, extracted.Name, extracted.Phone),
			PendingIdentity: &PendingIdentity{Name: extracted.Name, Phone: extracted.Phone},
		}, nil
	}

	// Scenario 2: the client re-submitted the pending identity and the
	// customer agreed. Register.
	if msg.Name != "" && msg.Phone != "" && s.classifier.Affirmed(ctx, msg.Text) {
		return s.register(ctx, msg)
	}

	// Scenario 3: a bare denial of the proposed identity.
	if identify.IsYesNoToken(msg.Text) && !identify.IsStrictAffirmative(msg.Text) {
		s.metrics.ObserveScenario("retry_identity")
		return &ConversationReply{Success: true, Message: pickReply(identityRetryReplies)}, nil
	}

	// Scenario 4: nothing usable yet. Ask for the data.
	return s.onboard(ctx, msg)
}

// register creates the customer account, reusing an existing one when
// the phone is already registered.
func (s *Service) register(ctx context.Context, msg InboundMessage) (*ConversationReply, error) {
	customer, err := s.repo.FindByPhone(ctx, msg.Phone)
	switch {
	case err == nil:
		// Already registered under this phone. Treat as identified.
	case errors.Is(err, customers.ErrCustomerNotFound):
		customer = &customers.Customer{Name: msg.Name, Phone: msg.Phone}
		if createErr := s.repo.Create(ctx, customer); createErr != nil {
			if errors.Is(createErr, customers.ErrPhoneTaken) {
				// Lost a race with a concurrent registration.
				customer, err = s.repo.FindByPhone(ctx, msg.Phone)
				if err != nil {
					return nil, fmt.Errorf("chat: reload customer: %w", err)
				}
			} else {
				return nil, fmt.Errorf("chat: create customer: %w", createErr)
			}
		}
	default:
		return nil, fmt.Errorf("chat: customer lookup: %w", err)
	}

	s.logger.Info("customer registered", "customer_id", customer.ID)
	s.metrics.ObserveScenario("register")
	return &ConversationReply{
		Success:            true,
		Message:            fillTemplate(registeredTemplate, customer.Name, customer.Phone),
		CustomerIdentified: true,
		IdentityConfirmed:  true,
		Name:               customer.Name,
		Phone:              customer.Phone,
	}, nil
}

// onboard asks the model for a short identification request, falling
// back to a canned phrasing when the provider is degraded.
func (s *Service) onboard(ctx context.Context, msg InboundMessage) (*ConversationReply, error) {
	reply := s.ai.Complete(ctx, onboardingTask, msg.Model, nil, onboardingPersona)
	if reply == ai.ApologyReply() {
		reply = pickReply(onboardingReplies)
	}
	s.metrics.ObserveScenario("onboarding")
	return &ConversationReply{Success: true, Message: reply}, nil
}
