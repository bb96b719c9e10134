package chat

import "time"

// InboundMessage is the send-message request body. Name, Phone and
// IdentityConfirmed echo back what the client accumulated during the
// identification round-trip; the server holds no session state for it.
type InboundMessage struct {
	Text  string `json:"texto" validate:"required"`
	Model string `json:"modeloIA" validate:"required"`

	Name              string `json:"nome"`
	Phone             string `json:"telefone"`
	IdentityConfirmed bool   `json:"dadosConfirmados"`
}

// HistoryEntry is one transcript message as exposed on the wire.
type HistoryEntry struct {
	Text      string    `json:"texto"`
	Origin    string    `json:"origem"`
	CreatedAt time.Time `json:"dataCriacao"`
}

// PendingIdentity carries extracted but unconfirmed identity data back to
// the client, which re-submits it with the confirmation message.
type PendingIdentity struct {
	Name  string `json:"nome"`
	Phone string `json:"telefone"`
}

// ConversationReply is the send-message response envelope. Every flow
// returns this shape; absent fields are omitted.
type ConversationReply struct {
	Success bool   `json:"sucesso"`
	Message string `json:"mensagem"`
	Error   string `json:"erro,omitempty"`

	CustomerIdentified bool   `json:"clienteIdentificado"`
	IdentityConfirmed  bool   `json:"dadosConfirmados"`
	Name               string `json:"nome,omitempty"`
	Phone              string `json:"telefone,omitempty"`

	AccountDeleted  bool             `json:"contaExcluida"`
	PendingIdentity *PendingIdentity `json:"dadosTemporarios,omitempty"`
	History         []HistoryEntry   `json:"historico,omitempty"`
}
