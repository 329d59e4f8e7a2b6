package models

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 100))
	assert.Equal(t, "abcde...", Truncate("abcdefgh", 5))
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	// Cutting inside a multi-byte rune must back up to the rune boundary.
	s := strings.Repeat("コーヒー", 40)
	for n := 1; n < 16; n++ {
		got := Truncate(s, n)
		assert.True(t, utf8.ValidString(got), "Truncate(%q, %d) = %q", s[:12], n, got)
		assert.LessOrEqual(t, len(got), n+len("..."))
	}
}

func TestFirstPromptFallsBackToMessages(t *testing.T) {
	conv := &Conversation{}
	conv.AppendMessage(RoleAssistant, "a question")
	conv.AppendMessage(RoleUser, "a prompt")
	assert.Equal(t, "a prompt", conv.FirstPrompt())
}
