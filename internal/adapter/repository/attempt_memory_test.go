package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinbuilds/booking-engine/internal/domain/entity"
)

func TestMemoryAttemptRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save and get returns a copy", func(t *testing.T) {
		repo := NewMemoryAttemptRepository(time.Minute)
		attempt := &entity.CheckoutAttempt{
			ID:      "a1",
			OrderID: "order_1",
			Status:  entity.AttemptStatusAwaitingUser,
		}
		require.NoError(t, repo.Save(ctx, attempt))

		got, err := repo.Get(ctx, "a1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "order_1", got.OrderID)

		// Mutating the returned copy must not touch the stored attempt.
		got.Status = entity.AttemptStatusFailed
		again, err := repo.Get(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, entity.AttemptStatusAwaitingUser, again.Status)
	})

	t.Run("unknown id yields nil, nil", func(t *testing.T) {
		repo := NewMemoryAttemptRepository(time.Minute)
		got, err := repo.Get(ctx, "missing")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("expired entries are treated as missing", func(t *testing.T) {
		repo := NewMemoryAttemptRepository(10 * time.Millisecond)
		require.NoError(t, repo.Save(ctx, &entity.CheckoutAttempt{ID: "a2"}))

		time.Sleep(25 * time.Millisecond)

		got, err := repo.Get(ctx, "a2")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("save overwrites the previous state", func(t *testing.T) {
		repo := NewMemoryAttemptRepository(time.Minute)
		attempt := &entity.CheckoutAttempt{ID: "a3", Status: entity.AttemptStatusAwaitingUser}
		require.NoError(t, repo.Save(ctx, attempt))

		attempt.Status = entity.AttemptStatusCancelled
		require.NoError(t, repo.Save(ctx, attempt))

		got, err := repo.Get(ctx, "a3")
		require.NoError(t, err)
		assert.Equal(t, entity.AttemptStatusCancelled, got.Status)
	})
}
