package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaeljabbour/openai-images-mcp/models"
)

func TestMemoryStoreContract(t *testing.T) {
	store := NewMemoryStore()

	conv, err := store.Create(models.ModeExplorer)
	require.NoError(t, err)

	loaded, err := store.Load(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, loaded.ID)
	assert.Empty(t, loaded.Messages)

	conv.AppendMessage(models.RoleUser, "hello")
	require.NoError(t, store.Save(conv))

	loaded, err = store.Load(conv.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 1)

	require.NoError(t, store.Delete(conv.ID))
	_, err = store.Load(conv.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(conv.ID), ErrNotFound)
}

func TestMemoryStoreIsolatesCallerMutations(t *testing.T) {
	store := NewMemoryStore()

	conv, err := store.Create(models.ModeGuided)
	require.NoError(t, err)

	// Mutating the returned record without Save must not leak into the store.
	conv.AppendMessage(models.RoleUser, "unsaved")

	loaded, err := store.Load(conv.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Messages)
}

func TestMemoryStoreSearchExcerpt(t *testing.T) {
	store := NewMemoryStore()

	conv, err := store.Create(models.ModeGuided)
	require.NoError(t, err)
	conv.AppendMessage(models.RoleUser, "a poster of the northern lights")
	require.NoError(t, store.Save(conv))

	results, err := store.Search("NORTHERN")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].MatchingMessage, "northern lights")

	empty, err := store.Search("nothing matches this")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStoreStats(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Create(models.ModeGuided)
	require.NoError(t, err)

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Conversations)
	assert.Greater(t, stats.TotalBytes, int64(0))
	assert.Equal(t, "memory", stats.Location)
}
