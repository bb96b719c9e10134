package customers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// PostgresRepository stores customers and chat turns in the relational
// database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("customers: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the tables when they do not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS customers (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT NOT NULL UNIQUE,
			pending_deletion BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS chat_turns (
			id UUID PRIMARY KEY,
			customer_id UUID NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
			text TEXT NOT NULL,
			origin TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_chat_turns_customer_created
			ON chat_turns (customer_id, created_at);
	`)
	if err != nil {
		return fmt.Errorf("customers: ensure schema: %w", err)
	}
	return nil
}

// FindByPhone fetches the customer registered under the phone number.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string) (*Customer, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, phone, pending_deletion, created_at
		FROM customers
		WHERE phone = $1
	`, phone)

	var c Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.PendingDeletionConfirmation, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("customers: select failed: %w", err)
	}
	return &c, nil
}

// Create inserts a new customer, assigning its id and creation time.
func (r *PostgresRepository) Create(ctx context.Context, customer *Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}

	var createdAt time.Time
	err := r.pool.QueryRow(ctx, `
		INSERT INTO customers (id, name, phone, pending_deletion)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, customer.ID, customer.Name, customer.Phone, customer.PendingDeletionConfirmation).Scan(&createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrPhoneTaken
		}
		return fmt.Errorf("customers: insert failed: %w", err)
	}

	customer.CreatedAt = createdAt
	return nil
}

// Save persists mutable customer fields.
func (r *PostgresRepository) Save(ctx context.Context, customer *Customer) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE customers SET name = $1, pending_deletion = $2
		WHERE id = $3
	`, customer.Name, customer.PendingDeletionConfirmation, customer.ID)
	if err != nil {
		return fmt.Errorf("customers: update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// Delete removes the customer and every chat turn in one transaction.
func (r *PostgresRepository) Delete(ctx context.Context, customer *Customer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("customers: begin delete: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM chat_turns WHERE customer_id = $1`, customer.ID); err != nil {
		return fmt.Errorf("customers: delete turns: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM customers WHERE id = $1`, customer.ID); err != nil {
		return fmt.Errorf("customers: delete customer: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("customers: commit delete: %w", err)
	}
	return nil
}

// ListTurnsSince returns the customer's turns at or after the timestamp,
// ordered ascending by creation time.
func (r *PostgresRepository) ListTurnsSince(ctx context.Context, customerID uuid.UUID, since time.Time) ([]Turn, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, customer_id, text, origin, created_at
		FROM chat_turns
		WHERE customer_id = $1 AND created_at >= $2
		ORDER BY created_at ASC
	`, customerID, since)
	if err != nil {
		return nil, fmt.Errorf("customers: list turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.Text, &t.Origin, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("customers: scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("customers: iterate turns: %w", err)
	}
	return turns, nil
}

// AppendTurn persists one chat turn.
func (r *PostgresRepository) AppendTurn(ctx context.Context, turn *Turn) error {
	if turn.ID == uuid.Nil {
		turn.ID = uuid.New()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO chat_turns (id, customer_id, text, origin, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, turn.ID, turn.CustomerID, turn.Text, turn.Origin, turn.CreatedAt)
	if err != nil {
		return fmt.Errorf("customers: insert turn: %w", err)
	}
	return nil
}

// DeleteAllTurns removes every turn belonging to the customer.
func (r *PostgresRepository) DeleteAllTurns(ctx context.Context, customerID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM chat_turns WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("customers: delete turns: %w", err)
	}
	return nil
}
