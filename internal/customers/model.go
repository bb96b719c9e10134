package customers

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a registered chat user, uniquely keyed by phone number.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"nome"`
	Phone     string    `json:"telefone"`
	CreatedAt time.Time `json:"data_criacao"`

	// PendingDeletionConfirmation routes the customer exclusively to the
	// deletion sub-flow until the request is confirmed or denied.
	PendingDeletionConfirmation bool `json:"aguardando_confirmacao_exclusao"`
}

// Turn origins.
const (
	OriginCustomer = "cliente"
	OriginBot      = "bot"
)

// Turn is one message of the chat transcript, tagged with its origin.
// Turns are append-only and removed en masse with the owning customer.
type Turn struct {
	ID         uuid.UUID `json:"-"`
	CustomerID uuid.UUID `json:"-"`
	Text       string    `json:"texto"`
	Origin     string    `json:"origem"`
	CreatedAt  time.Time `json:"data_criacao"`
}
