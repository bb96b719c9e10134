package chat

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/omni-inovacoes/omnichatbot/internal/ai"
	"github.com/omni-inovacoes/omnichatbot/pkg/logging"
)

const systemFaultReply = "Desculpe, ocorreu um erro inesperado em nosso sistema. Tente novamente."

// emptyMessageHint is the plain-text body of validation failures.
const emptyMessageHint = "Digite uma mensagem"

// Handler exposes the chat HTTP surface: message submission and the
// model catalog.
type Handler struct {
	service  *Service
	catalog  *ai.Catalog
	validate *validator.Validate
	logger   *logging.Logger
}

// NewHandler creates the chat HTTP handler.
func NewHandler(service *Service, catalog *ai.Catalog, logger *logging.Logger) *Handler {
	if service == nil || catalog == nil {
		panic("chat: service and catalog are required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service:  service,
		catalog:  catalog,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// SendMessage handles POST /api/chat/enviar.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var msg InboundMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, emptyMessageHint, http.StatusBadRequest)
		return
	}
	msg.Text = strings.TrimSpace(msg.Text)
	if err := h.validate.Struct(msg); err != nil {
		http.Error(w, emptyMessageHint, http.StatusBadRequest)
		return
	}

	reply, err := h.service.Process(r.Context(), msg)
	if err != nil {
		h.logger.Error("conversation turn failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, ConversationReply{
			Success: false,
			Error:   systemFaultReply,
		})
		return
	}

	h.writeJSON(w, http.StatusOK, reply)
}

// ListModels handles GET /api/chat/modelos.
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	models := h.catalog.List(r.Context())
	h.writeJSON(w, http.StatusOK, map[string]any{"modelos": models})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response encode failed", "error", err)
	}
}
