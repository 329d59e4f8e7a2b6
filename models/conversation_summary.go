package models

import (
	"time"
)

// ConversationSummary is the listing view of a conversation: enough to pick
// a session to resume without loading full message bodies.
type ConversationSummary struct {
	ID              string       `json:"conversation_id"`
	FirstPrompt     string       `json:"first_prompt"`
	Mode            DialogueMode `json:"dialogue_mode"`
	MessageCount    int          `json:"message_count"`
	GenerationCount int          `json:"generation_count"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	// MatchingMessage is set on search results only: an excerpt of the
	// first message that matched the query.
	MatchingMessage string `json:"matching_message,omitempty"`
}

// StoreStats describes the storage footprint of all conversations.
type StoreStats struct {
	Conversations int    `json:"total_conversations"`
	TotalBytes    int64  `json:"total_size_bytes"`
	Location      string `json:"storage_location"`
}
