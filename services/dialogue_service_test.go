package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaeljabbour/openai-images-mcp/models"
)

func newTestConversation(mode models.DialogueMode, imageType models.ImageType) *models.Conversation {
	conv := NewConversation(mode)
	conv.ImageType = imageType
	return conv
}

func TestDialogueTerminatesWithinBudget(t *testing.T) {
	ds := NewDialogueService()

	modes := []models.DialogueMode{models.ModeQuick, models.ModeGuided, models.ModeExplorer, models.ModeSkip}
	types := []models.ImageType{models.TypeLogo, models.TypeSocialMedia, models.TypePortrait, models.TypeGeneral}

	for _, mode := range modes {
		for _, imageType := range types {
			conv := newTestConversation(mode, imageType)
			budget := ds.Budget(mode, imageType)

			asked := 0
			for {
				q := ds.NextQuestion(conv)
				if q == nil {
					break
				}
				asked++
				require.LessOrEqual(t, asked, budget, "%s/%s exceeded budget", mode, imageType)
				ds.RecordAnswer(conv, fmt.Sprintf("answer %d", asked))
			}

			assert.Equal(t, models.StageReady, conv.Stage, "%s/%s", mode, imageType)
			assert.Nil(t, ds.NextQuestion(conv))
		}
	}
}

func TestSkipModeImmediatelyTerminal(t *testing.T) {
	ds := NewDialogueService()
	conv := newTestConversation(models.ModeSkip, models.TypeGeneral)

	assert.Nil(t, ds.NextQuestion(conv))
	assert.Equal(t, models.StageReady, conv.Stage)
}

func TestGuidedLogoAsksThreeQuestionsInOrder(t *testing.T) {
	ds := NewDialogueService()
	conv := newTestConversation(models.ModeGuided, models.TypeLogo)

	var keys []string
	for {
		q := ds.NextQuestion(conv)
		if q == nil {
			break
		}
		keys = append(keys, q.Key)
		ds.RecordAnswer(conv, "something")
	}
	assert.Equal(t, []string{"purpose", "style", "colors"}, keys)
}

func TestGuidedBudgetVariesByType(t *testing.T) {
	ds := NewDialogueService()

	assert.Equal(t, 3, ds.Budget(models.ModeGuided, models.TypeLogo))
	assert.Equal(t, 3, ds.Budget(models.ModeGuided, models.TypeSocialMedia))
	assert.Equal(t, 4, ds.Budget(models.ModeGuided, models.TypePortrait))
	assert.Equal(t, 7, ds.Budget(models.ModeExplorer, models.TypeLogo))
	assert.Equal(t, 2, ds.Budget(models.ModeQuick, models.TypeGeneral))
	assert.Equal(t, 0, ds.Budget(models.ModeSkip, models.TypeGeneral))
}

func TestAnsweredQuestionNeverReasked(t *testing.T) {
	ds := NewDialogueService()
	conv := newTestConversation(models.ModeExplorer, models.TypeGeneral)

	seen := map[string]bool{}
	for {
		q := ds.NextQuestion(conv)
		if q == nil {
			break
		}
		require.False(t, seen[q.Key], "question %s asked twice", q.Key)
		seen[q.Key] = true
		ds.RecordAnswer(conv, "answer")
	}
}

func TestRecordAnswerAtTerminalIsNoop(t *testing.T) {
	ds := NewDialogueService()
	conv := newTestConversation(models.ModeSkip, models.TypeGeneral)

	require.Nil(t, ds.NextQuestion(conv))
	ds.RecordAnswer(conv, "ignored")
	assert.Empty(t, conv.Answers)
}

func TestPurposeQuestionVariesByType(t *testing.T) {
	ds := NewDialogueService()

	logo := ds.Plan(models.ModeGuided, models.TypeLogo)[0]
	general := ds.Plan(models.ModeGuided, models.TypeGeneral)[0]

	assert.Equal(t, "purpose", logo.Key)
	assert.Equal(t, "purpose", general.Key)
	assert.NotEqual(t, logo.Question, general.Question)
}

func TestStageCursorAdvances(t *testing.T) {
	ds := NewDialogueService()
	conv := newTestConversation(models.ModeGuided, models.TypePortrait)

	q := ds.NextQuestion(conv)
	require.NotNil(t, q)
	assert.Equal(t, models.StageInitial, conv.Stage)

	ds.RecordAnswer(conv, "personal art")
	assert.Equal(t, models.StageStyleExploration, conv.Stage)
}
