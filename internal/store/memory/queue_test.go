package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playqueue/internal/store"
	"playqueue/shared/go/models"
)

func TestQueueRepositoryInsertAndDelete(t *testing.T) {
	repo := NewQueueRepository()
	ctx := context.Background()

	_, err := repo.InsertQueueEntry(ctx, "u", "a", store.PlaceBack, 3)
	require.NoError(t, err)
	_, err = repo.InsertQueueEntry(ctx, "u", "b", store.PlaceBack, 3)
	require.NoError(t, err)
	front, err := repo.InsertQueueEntry(ctx, "u", "c", store.PlaceFront, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, front.Position)

	_, err = repo.InsertQueueEntry(ctx, "u", "d", store.PlaceBack, 3)
	assert.ErrorIs(t, err, store.ErrQueueFull)
	_, err = repo.InsertQueueEntry(ctx, "u", "a", store.PlaceBack, 10)
	assert.ErrorIs(t, err, store.ErrDuplicateEntry)

	entries, err := repo.ListQueue(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, models.TrackIDs(entries))

	require.NoError(t, repo.DeleteQueueEntry(ctx, "u", "c"))
	entries, err = repo.ListQueue(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, models.TrackIDs(entries))
	assert.Equal(t, 0, entries[0].Position)
	assert.Equal(t, 1, entries[1].Position)

	assert.ErrorIs(t, repo.DeleteQueueEntry(ctx, "u", "c"), store.ErrEntryNotFound)
}

func TestQueueRepositoryListReturnsCopy(t *testing.T) {
	repo := NewQueueRepository()
	ctx := context.Background()

	_, err := repo.InsertQueueEntry(ctx, "u", "a", store.PlaceBack, 10)
	require.NoError(t, err)

	entries, err := repo.ListQueue(ctx, "u")
	require.NoError(t, err)
	entries[0].TrackID = "mutated"

	again, err := repo.ListQueue(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].TrackID)
}

func TestQueueRepositoryReorder(t *testing.T) {
	repo := NewQueueRepository()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := repo.InsertQueueEntry(ctx, "u", id, store.PlaceBack, 10)
		require.NoError(t, err)
	}

	require.NoError(t, repo.ReorderQueue(ctx, "u", []string{"c", "a", "b"}))
	entries, err := repo.ListQueue(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, models.TrackIDs(entries))
	for i, entry := range entries {
		assert.Equal(t, i, entry.Position)
	}

	assert.ErrorIs(t, repo.ReorderQueue(ctx, "u", []string{"a", "b"}), store.ErrQueueChanged)
	assert.ErrorIs(t, repo.ReorderQueue(ctx, "u", []string{"a", "b", "x"}), store.ErrQueueChanged)
	assert.ErrorIs(t, repo.ReorderQueue(ctx, "u", []string{"a", "a", "b"}), store.ErrQueueChanged)

	entries, err = repo.ListQueue(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, models.TrackIDs(entries))
}

func TestQueueRepositoryClear(t *testing.T) {
	repo := NewQueueRepository()
	ctx := context.Background()

	_, err := repo.InsertQueueEntry(ctx, "u", "a", store.PlaceBack, 10)
	require.NoError(t, err)
	_, err = repo.InsertQueueEntry(ctx, "other", "a", store.PlaceBack, 10)
	require.NoError(t, err)

	require.NoError(t, repo.ClearQueue(ctx, "u"))
	require.NoError(t, repo.ClearQueue(ctx, "u"))

	entries, err := repo.ListQueue(ctx, "u")
	require.NoError(t, err)
	assert.Empty(t, entries)

	others, err := repo.ListQueue(ctx, "other")
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestCatalogPlayability(t *testing.T) {
	c := NewCatalog(models.Track{ID: "a", MediaType: models.MediaAudio})
	ctx := context.Background()

	require.NoError(t, c.UpsertTracks(ctx, []models.Track{{ID: "img", MediaType: models.MediaImage}}))

	ok, err := c.Exists(ctx, "img")
	require.NoError(t, err)
	assert.True(t, ok)

	playable, err := c.IsPlayableAudio(ctx, "img")
	require.NoError(t, err)
	assert.False(t, playable)

	playable, err = c.IsPlayableAudio(ctx, "a")
	require.NoError(t, err)
	assert.True(t, playable)

	ok, err = c.Exists(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}
