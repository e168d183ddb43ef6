package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"taxonomy-browser/internal/storage"
	"taxonomy-browser/internal/storage/mocks"
	"taxonomy-browser/internal/taxonomy"
)

func TestEnsureDataset(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		_, err := ensureDataset(ctx, storage.NewMemoryStore())
		assert.ErrorIs(t, err, errNoDataset)
	})

	t.Run("committed dataset", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.InsertAll(ctx, []taxonomy.Node{
			{ID: "R", Chains: []taxonomy.Chain{{Children: []string{}}}},
		}))

		count, err := ensureDataset(ctx, store)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("count fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockNodeStore(ctrl)
		countErr := errors.New("database is locked")
		store.EXPECT().Count(gomock.Any()).Return(0, countErr)

		_, err := ensureDataset(ctx, store)
		assert.ErrorIs(t, err, countErr)
	})
}
