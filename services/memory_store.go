package services

import (
	"encoding/json"
	"sync"

	"github.com/michaeljabbour/openai-images-mcp/models"
)

// MemoryStore is the map-backed ConversationStore used in tests and
// anywhere durability is not wanted. Same contract as the durable
// backends, including defensive copies on load and save.
type MemoryStore struct {
	mu            sync.Mutex
	conversations map[string]*models.Conversation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{conversations: make(map[string]*models.Conversation)}
}

func (ms *MemoryStore) Create(mode models.DialogueMode) (*models.Conversation, error) {
	conv := NewConversation(mode)
	if err := ms.Save(conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (ms *MemoryStore) Load(id string) (*models.Conversation, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	conv, ok := ms.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneConversation(conv), nil
}

func (ms *MemoryStore) Save(conv *models.Conversation) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.conversations[conv.ID] = cloneConversation(conv)
	return nil
}

func (ms *MemoryStore) Delete(id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, ok := ms.conversations[id]; !ok {
		return ErrNotFound
	}
	delete(ms.conversations, id)
	return nil
}

func (ms *MemoryStore) List() ([]models.ConversationSummary, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	summaries := make([]models.ConversationSummary, 0, len(ms.conversations))
	for _, conv := range ms.conversations {
		summaries = append(summaries, summarize(conv))
	}
	sortSummaries(summaries)
	return summaries, nil
}

func (ms *MemoryStore) Search(query string) ([]models.ConversationSummary, error) {
	listed, err := ms.List()
	if err != nil {
		return nil, err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	var matches []models.ConversationSummary
	for _, summary := range listed {
		conv, ok := ms.conversations[summary.ID]
		if !ok {
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

func (ms *MemoryStore) Stats() (models.StoreStats, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	stats := models.StoreStats{Location: "memory"}
	for _, conv := range ms.conversations {
		data, err := json.Marshal(conv)
		if err != nil {
			continue
		}
		stats.Conversations++
		stats.TotalBytes += int64(len(data))
	}
	return stats, nil
}
