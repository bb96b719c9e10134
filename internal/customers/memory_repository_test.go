package customers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryCreateAndFind(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	c := &Customer{Name: "Jose Silva", Phone: "61999988887"}
	require.NoError(t, repo.Create(ctx, c))
	assert.NotZero(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	found, err := repo.FindByPhone(ctx, "61999988887")
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)
	assert.Equal(t, "Jose Silva", found.Name)

	_, err = repo.FindByPhone(ctx, "11900000000")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestMemoryRepositoryPhoneUniqueness(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Customer{Name: "Jose Silva", Phone: "61999988887"}))
	err := repo.Create(ctx, &Customer{Name: "Outro Nome", Phone: "61999988887"})
	assert.ErrorIs(t, err, ErrPhoneTaken)
}

func TestMemoryRepositorySave(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	c := &Customer{Name: "Jose Silva", Phone: "61999988887"}
	require.NoError(t, repo.Create(ctx, c))

	c.PendingDeletionConfirmation = true
	require.NoError(t, repo.Save(ctx, c))

	found, err := repo.FindByPhone(ctx, "61999988887")
	require.NoError(t, err)
	assert.True(t, found.PendingDeletionConfirmation)

	err = repo.Save(ctx, &Customer{Name: "Fantasma"})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestMemoryRepositoryDeleteCascades(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	c := &Customer{Name: "Jose Silva", Phone: "61999988887"}
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.AppendTurn(ctx, &Turn{CustomerID: c.ID, Text: "oi", Origin: OriginCustomer}))
	require.NoError(t, repo.AppendTurn(ctx, &Turn{CustomerID: c.ID, Text: "olá!", Origin: OriginBot}))

	require.NoError(t, repo.Delete(ctx, c))

	_, err := repo.FindByPhone(ctx, "61999988887")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Zero(t, repo.TurnCount(c.ID))

	// The phone is reusable after deletion.
	assert.NoError(t, repo.Create(ctx, &Customer{Name: "Novo Cliente", Phone: "61999988887"}))
}

func TestMemoryRepositoryDeleteAllTurnsKeepsCustomer(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	c := &Customer{Name: "Jose Silva", Phone: "61999988887"}
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.AppendTurn(ctx, &Turn{CustomerID: c.ID, Text: "oi", Origin: OriginCustomer}))
	require.NoError(t, repo.AppendTurn(ctx, &Turn{CustomerID: c.ID, Text: "olá!", Origin: OriginBot}))

	require.NoError(t, repo.DeleteAllTurns(ctx, c.ID))

	assert.Zero(t, repo.TurnCount(c.ID))
	turns, err := repo.ListTurnsSince(ctx, c.ID, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, turns)

	// The transcript wipe does not touch the account itself.
	_, err = repo.FindByPhone(ctx, "61999988887")
	assert.NoError(t, err)
}

func TestMemoryRepositoryListTurnsSince(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	c := &Customer{Name: "Jose Silva", Phone: "61999988887"}
	require.NoError(t, repo.Create(ctx, c))

	now := time.Now()
	old := Turn{CustomerID: c.ID, Text: "antiga", Origin: OriginCustomer, CreatedAt: now.Add(-48 * time.Hour)}
	recent1 := Turn{CustomerID: c.ID, Text: "recente um", Origin: OriginCustomer, CreatedAt: now.Add(-2 * time.Hour)}
	recent2 := Turn{CustomerID: c.ID, Text: "recente dois", Origin: OriginBot, CreatedAt: now.Add(-time.Hour)}
	for _, turn := range []Turn{old, recent1, recent2} {
		tcopy := turn
		require.NoError(t, repo.AppendTurn(ctx, &tcopy))
	}

	turns, err := repo.ListTurnsSince(ctx, c.ID, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "recente um", turns[0].Text)
	assert.Equal(t, "recente dois", turns[1].Text)
}
