package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaeljabbour/openai-images-mcp/models"
)

func newFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestFileStoreCreateThenLoad(t *testing.T) {
	store, _ := newFileStore(t)

	conv, err := store.Create(models.ModeGuided)
	require.NoError(t, err)
	require.NotEmpty(t, conv.ID)

	loaded, err := store.Load(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, loaded.ID)
	assert.Empty(t, loaded.Messages)
	assert.Equal(t, models.ModeGuided, loaded.Mode)
}

func TestFileStoreAppendOrdering(t *testing.T) {
	store, _ := newFileStore(t)

	conv, err := store.Create(models.ModeQuick)
	require.NoError(t, err)

	conv.AppendMessage(models.RoleUser, "first")
	conv.AppendMessage(models.RoleAssistant, "second")
	require.NoError(t, store.Save(conv))

	loaded, err := store.Load(conv.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 2)
	assert.Equal(t, "first", loaded.Messages[0].Content)
	assert.Equal(t, "second", loaded.Messages[1].Content)
}

func TestFileStoreDeleteThenLoad(t *testing.T) {
	store, _ := newFileStore(t)

	conv, err := store.Create(models.ModeGuided)
	require.NoError(t, err)

	require.NoError(t, store.Delete(conv.ID))

	_, err = store.Load(conv.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	summaries, err := store.List()
	require.NoError(t, err)
	for _, s := range summaries {
		assert.NotEqual(t, conv.ID, s.ID)
	}
}

func TestFileStoreDeleteUnknown(t *testing.T) {
	store, _ := newFileStore(t)
	assert.ErrorIs(t, store.Delete("conv_missing"), ErrNotFound)
}

func TestFileStoreSurvivesRestart(t *testing.T) {
	store, dir := newFileStore(t)

	conv, err := store.Create(models.ModeGuided)
	require.NoError(t, err)
	conv.AppendMessage(models.RoleUser, "prompt")
	conv.AppendMessage(models.RoleAssistant, "question")
	require.NoError(t, store.Save(conv))

	// A fresh store over the same directory stands in for a restart.
	reopened, err := NewFileStore(dir)
	require.NoError(t, err)

	loaded, err := reopened.Load(conv.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 2)
	assert.Equal(t, "prompt", loaded.Messages[0].Content)
	assert.Equal(t, "question", loaded.Messages[1].Content)
}

func TestFileStoreListNewestFirst(t *testing.T) {
	store, _ := newFileStore(t)

	older, err := store.Create(models.ModeGuided)
	require.NoError(t, err)
	newer, err := store.Create(models.ModeGuided)
	require.NoError(t, err)

	newer.AppendMessage(models.RoleUser, "bump")
	require.NoError(t, store.Save(newer))

	summaries, err := store.List()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, newer.ID, summaries[0].ID)
	assert.Equal(t, older.ID, summaries[1].ID)
}

func TestFileStoreSearch(t *testing.T) {
	store, _ := newFileStore(t)

	match, err := store.Create(models.ModeGuided)
	require.NoError(t, err)
	match.AppendMessage(models.RoleUser, "A logo for my Coffee brand")
	require.NoError(t, store.Save(match))

	other, err := store.Create(models.ModeGuided)
	require.NoError(t, err)
	other.AppendMessage(models.RoleUser, "A mountain landscape")
	require.NoError(t, store.Save(other))

	results, err := store.Search("coffee")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, match.ID, results[0].ID)
	assert.Contains(t, results[0].MatchingMessage, "Coffee")
}

func TestFileStoreSkipsMalformedFiles(t *testing.T) {
	store, dir := newFileStore(t)

	conv, err := store.Create(models.ModeGuided)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "garbage.json"), []byte("not json"), 0o644))

	summaries, err := store.List()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, conv.ID, summaries[0].ID)
}

func TestFileStoreStats(t *testing.T) {
	store, dir := newFileStore(t)

	_, err := store.Create(models.ModeGuided)
	require.NoError(t, err)
	_, err = store.Create(models.ModeSkip)
	require.NoError(t, err)

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Conversations)
	assert.Greater(t, stats.TotalBytes, int64(0))
	assert.Equal(t, dir, stats.Location)
}

func TestFileStoreLoadReturnsCopy(t *testing.T) {
	store, _ := newFileStore(t)

	conv, err := store.Create(models.ModeGuided)
	require.NoError(t, err)

	first, err := store.Load(conv.ID)
	require.NoError(t, err)
	first.AppendMessage(models.RoleUser, "mutated without save")

	second, err := store.Load(conv.ID)
	require.NoError(t, err)
	assert.Empty(t, second.Messages)
}
