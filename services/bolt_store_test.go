package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaeljabbour/openai-images-mcp/models"
)

func TestBoltStoreContract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.db")
	store, err := NewBoltStore(path)
	require.NoError(t, err)
	defer store.Close()

	conv, err := store.Create(models.ModeGuided)
	require.NoError(t, err)

	conv.AppendMessage(models.RoleUser, "a banner with a whale")
	require.NoError(t, store.Save(conv))

	loaded, err := store.Load(conv.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 1)

	results, err := store.Search("whale")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, conv.ID, results[0].ID)

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Conversations)
	assert.Equal(t, path, stats.Location)

	require.NoError(t, store.Delete(conv.ID))
	_, err = store.Load(conv.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.db")

	store, err := NewBoltStore(path)
	require.NoError(t, err)

	conv, err := store.Create(models.ModeQuick)
	require.NoError(t, err)
	conv.AppendMessage(models.RoleUser, "first")
	conv.AppendMessage(models.RoleAssistant, "second")
	require.NoError(t, store.Save(conv))
	require.NoError(t, store.Close())

	reopened, err := NewBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(conv.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 2)
	assert.Equal(t, "first", loaded.Messages[0].Content)
}
