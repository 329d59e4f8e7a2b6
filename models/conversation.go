package models

import (
	"time"
	"unicode/utf8"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation entry. Immutable once appended.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is the durable unit of session state: one record per id,
// messages append-only, generations owned exclusively by the conversation.
type Conversation struct {
	ID             string            `json:"conversation_id"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Mode           DialogueMode      `json:"dialogue_mode"`
	Stage          DialogueStage     `json:"stage"`
	ImageType      ImageType         `json:"image_type,omitempty"`
	OriginalPrompt string            `json:"original_prompt,omitempty"`
	Messages       []Message         `json:"messages"`
	Answers        map[string]string `json:"answers,omitempty"`
	Generations    []Generation      `json:"generations,omitempty"`
}

// Generation records one delivered artifact together with the enhanced
// prompt that produced it and the advisory verification attached to it.
type Generation struct {
	ID            string             `json:"id"`
	FilePath      string             `json:"file_path"`
	Prompt        string             `json:"prompt"`
	Size          ImageSize          `json:"size"`
	QualityBefore int                `json:"quality_before"`
	QualityAfter  int                `json:"quality_after"`
	Verification  VerificationResult `json:"verification"`
	CreatedAt     time.Time          `json:"created_at"`
}

func (c *Conversation) AppendMessage(role Role, content string) {
	c.Messages = append(c.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	c.UpdatedAt = time.Now()
}

func (c *Conversation) SetAnswer(key, value string) {
	if c.Answers == nil {
		c.Answers = make(map[string]string)
	}
	c.Answers[key] = value
	c.UpdatedAt = time.Now()
}

// FirstPrompt returns the opening user prompt, truncated for summaries.
func (c *Conversation) FirstPrompt() string {
	text := c.OriginalPrompt
	if text == "" {
		for _, m := range c.Messages {
			if m.Role == RoleUser {
				text = m.Content
				break
			}
		}
	}
	return Truncate(text, 100)
}

// Truncate shortens s to at most n bytes, marking the cut. The cut lands on
// a rune boundary so multi-byte text stays valid UTF-8.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
