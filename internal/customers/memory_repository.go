package customers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-process Repository used in tests and when no
// database is configured. It enforces the same phone uniqueness and
// cascade-delete semantics as the Postgres implementation.
type MemoryRepository struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]*Customer
	byPhone   map[string]uuid.UUID
	turns     map[uuid.UUID][]Turn
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		customers: make(map[uuid.UUID]*Customer),
		byPhone:   make(map[string]uuid.UUID),
		turns:     make(map[uuid.UUID][]Turn),
	}
}

// FindByPhone fetches the customer registered under the phone number.
func (r *MemoryRepository) FindByPhone(_ context.Context, phone string) (*Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPhone[phone]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	found := *r.customers[id]
	return &found, nil
}

// Create inserts a new customer, assigning its id and creation time.
func (r *MemoryRepository) Create(_ context.Context, customer *Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byPhone[customer.Phone]; taken {
		return ErrPhoneTaken
	}
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}

	stored := *customer
	r.customers[customer.ID] = &stored
	r.byPhone[customer.Phone] = customer.ID
	return nil
}

// Save persists mutable customer fields.
func (r *MemoryRepository) Save(_ context.Context, customer *Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.customers[customer.ID]
	if !ok {
		return ErrCustomerNotFound
	}
	existing.Name = customer.Name
	existing.PendingDeletionConfirmation = customer.PendingDeletionConfirmation
	return nil
}

// Delete removes the customer and every chat turn as one unit.
func (r *MemoryRepository) Delete(_ context.Context, customer *Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.customers[customer.ID]
	if !ok {
		return ErrCustomerNotFound
	}
	delete(r.byPhone, existing.Phone)
	delete(r.customers, customer.ID)
	delete(r.turns, customer.ID)
	return nil
}

// ListTurnsSince returns the customer's turns at or after the timestamp,
// ordered ascending by creation time.
func (r *MemoryRepository) ListTurnsSince(_ context.Context, customerID uuid.UUID, since time.Time) ([]Turn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Turn
	for _, t := range r.turns[customerID] {
		if !t.CreatedAt.Before(since) {
			out = append(out, t)
		}
	}
	return out, nil
}

// AppendTurn persists one chat turn.
func (r *MemoryRepository) AppendTurn(_ context.Context, turn *Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if turn.ID == uuid.Nil {
		turn.ID = uuid.New()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	r.turns[turn.CustomerID] = append(r.turns[turn.CustomerID], *turn)
	return nil
}

// DeleteAllTurns removes every turn belonging to the customer.
func (r *MemoryRepository) DeleteAllTurns(_ context.Context, customerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.turns, customerID)
	return nil
}

// TurnCount reports how many turns are stored for the customer.
func (r *MemoryRepository) TurnCount(customerID uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.turns[customerID])
}
