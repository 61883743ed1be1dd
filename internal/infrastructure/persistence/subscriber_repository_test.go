package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/dovoc/backend/internal/domain/newsletter"
	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSubscriberRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSubscriberRepository(db)
	ctx := context.Background()

	t.Run("saves and finds by email regardless of case", func(t *testing.T) {
		s, err := newsletter.NewSubscriber("Reader@Example.com")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, s))

		found, err := repo.FindByEmail(ctx, "  READER@example.com ")
		require.NoError(t, err)
		assert.Equal(t, "reader@example.com", found.Email)
	})

	t.Run("returns not found for unknown email", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists oldest subscription first", func(t *testing.T) {
		older, err := newsletter.NewSubscriber("older@example.com")
		require.NoError(t, err)
		older.SubscribedAt = time.Now().Add(-time.Hour)
		require.NoError(t, repo.Save(ctx, older))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "older@example.com", all[0].Email)
	})

	t.Run("deletes a subscriber", func(t *testing.T) {
		s, err := repo.FindByEmail(ctx, "reader@example.com")
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, s.ID))

		_, err = repo.FindByEmail(ctx, "reader@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
