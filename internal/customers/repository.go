package customers

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the customer store contract. Implementations enforce
// phone uniqueness; Delete removes the customer and all turns as a single
// persistence unit.
type Repository interface {
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
	Create(ctx context.Context, customer *Customer) error
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, customer *Customer) error

	ListTurnsSince(ctx context.Context, customerID uuid.UUID, since time.Time) ([]Turn, error)
	AppendTurn(ctx context.Context, turn *Turn) error
	DeleteAllTurns(ctx context.Context, customerID uuid.UUID) error
}
