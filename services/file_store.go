package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/michaeljabbour/openai-images-mcp/models"
)

const fileCacheSize = 128

// FileStore keeps one human-readable JSON file per conversation under a
// user-scoped directory. Writes go through a temp file and rename so a
// crash mid-write never corrupts an acknowledged record. A small LRU cache
// front-loads repeated reads within a session.
type FileStore struct {
	dir   string
	mu    sync.Mutex
	cache *lru.Cache[string, *models.Conversation]
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create conversation dir: %w", err)
	}
	cache, err := lru.New[string, *models.Conversation](fileCacheSize)
	if err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, cache: cache}, nil
}

func (fs *FileStore) Create(mode models.DialogueMode) (*models.Conversation, error) {
	conv := NewConversation(mode)
	if err := fs.Save(conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (fs *FileStore) Load(id string) (*models.Conversation, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if conv, ok := fs.cache.Get(id); ok {
		return cloneConversation(conv), nil
	}

	data, err := os.ReadFile(fs.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read conversation %s: %w", id, err)
	}

	var conv models.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("decode conversation %s: %w", id, err)
	}
	fs.cache.Add(id, cloneConversation(&conv))
	return &conv, nil
}

func (fs *FileStore) Save(conv *models.Conversation) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", conv.ID, err)
	}

	path := fs.path(conv.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write conversation %s: %w", conv.ID, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit conversation %s: %w", conv.ID, err)
	}

	fs.cache.Add(conv.ID, cloneConversation(conv))
	return nil
}

func (fs *FileStore) Delete(id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	err := os.Remove(fs.path(id))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete conversation %s: %w", id, err)
	}
	fs.cache.Remove(id)
	return nil
}

// summaryRecord decodes only the fields a listing needs; message bodies and
// generations stay as raw JSON so listing cost tracks conversation count,
// not message volume.
type summaryRecord struct {
	ID             string              `json:"conversation_id"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Mode           models.DialogueMode `json:"dialogue_mode"`
	OriginalPrompt string              `json:"original_prompt"`
	Messages       []json.RawMessage   `json:"messages"`
	Generations    []json.RawMessage   `json:"generations"`
}

func (fs *FileStore) List() ([]models.ConversationSummary, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	summaries := make([]models.ConversationSummary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(fs.dir, entry.Name()))
		if err != nil {
			continue
		}
		var rec summaryRecord
		if err := json.Unmarshal(data, &rec); err != nil || rec.ID == "" {
			// Skip malformed files rather than failing the whole listing.
			continue
		}
		summaries = append(summaries, models.ConversationSummary{
			ID:              rec.ID,
			FirstPrompt:     models.Truncate(rec.OriginalPrompt, 100),
			Mode:            rec.Mode,
			MessageCount:    len(rec.Messages),
			GenerationCount: len(rec.Generations),
			CreatedAt:       rec.CreatedAt,
			UpdatedAt:       rec.UpdatedAt,
		})
	}
	sortSummaries(summaries)
	return summaries, nil
}

func (fs *FileStore) Search(query string) ([]models.ConversationSummary, error) {
	listed, err := fs.List()
	if err != nil {
		return nil, err
	}

	var matches []models.ConversationSummary
	for _, summary := range listed {
		conv, err := fs.Load(summary.ID)
		if err != nil {
			continue
		}
		if excerpt, ok := matchConversation(conv, query); ok {
			summary.MatchingMessage = excerpt
			matches = append(matches, summary)
		}
		if len(matches) >= searchLimit {
			break
		}
	}
	return matches, nil
}

func (fs *FileStore) Stats() (models.StoreStats, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return models.StoreStats{}, fmt.Errorf("stat conversations: %w", err)
	}

	stats := models.StoreStats{Location: fs.dir}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		stats.Conversations++
		stats.TotalBytes += info.Size()
	}
	return stats, nil
}

func (fs *FileStore) path(id string) string {
	return filepath.Join(fs.dir, id+".json")
}
