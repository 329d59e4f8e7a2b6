package services

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/michaeljabbour/openai-images-mcp/models"
)

// ErrNotFound is returned when no conversation exists under the given id.
var ErrNotFound = errors.New("conversation not found")

// searchLimit caps search results at one match per conversation.
const searchLimit = 10

// ConversationStore is the durable keyed record of conversations. Every
// mutating call persists synchronously before returning; access per
// conversation id is sequential by contract (single process, no locking
// across ids needed).
//
// The engine takes the store as an explicit dependency: a file-backed store
// in production, memory in tests, with bbolt and DynamoDB backends for
// other local mediums.
type ConversationStore interface {
	Create(mode models.DialogueMode) (*models.Conversation, error)
	Load(id string) (*models.Conversation, error)
	Save(conv *models.Conversation) error
	Delete(id string) error
	List() ([]models.ConversationSummary, error)
	Search(query string) ([]models.ConversationSummary, error)
	Stats() (models.StoreStats, error)
}

// NewConversationID mints an opaque conversation id.
func NewConversationID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "conv_" + hex[:12]
}

// NewConversation builds an unsaved conversation shell. The orchestrator
// uses this to defer persistence until the turn reaches a safe point.
func NewConversation(mode models.DialogueMode) *models.Conversation {
	now := time.Now()
	return &models.Conversation{
		ID:        NewConversationID(),
		CreatedAt: now,
		UpdatedAt: now,
		Mode:      mode,
		Stage:     models.StageInitial,
		Messages:  []models.Message{},
	}
}

// cloneConversation deep-copies a record so cached or stored state is never
// aliased by callers mutating their copy mid-turn.
func cloneConversation(conv *models.Conversation) *models.Conversation {
	data, err := json.Marshal(conv)
	if err != nil {
		copied := *conv
		return &copied
	}
	var out models.Conversation
	if err := json.Unmarshal(data, &out); err != nil {
		copied := *conv
		return &copied
	}
	return &out
}

func summarize(conv *models.Conversation) models.ConversationSummary {
	return models.ConversationSummary{
		ID:              conv.ID,
		FirstPrompt:     conv.FirstPrompt(),
		Mode:            conv.Mode,
		MessageCount:    len(conv.Messages),
		GenerationCount: len(conv.Generations),
		CreatedAt:       conv.CreatedAt,
		UpdatedAt:       conv.UpdatedAt,
	}
}

// matchConversation reports the first message matching the query,
// case-insensitively.
func matchConversation(conv *models.Conversation, query string) (string, bool) {
	q := strings.ToLower(query)
	for _, m := range conv.Messages {
		if strings.Contains(strings.ToLower(m.Content), q) {
			return models.Truncate(m.Content, 100), true
		}
	}
	return "", false
}

func sortSummaries(summaries []models.ConversationSummary) {
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
}
