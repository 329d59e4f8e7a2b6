package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaeljabbour/openai-images-mcp/models"
)

func newEnhancer() *EnhanceService {
	return NewEnhanceService(NewPromptService())
}

func TestEnhanceLogoScenario(t *testing.T) {
	es := newEnhancer()

	original := "Create a logo"
	answers := map[string]string{
		"purpose": "artisanal coffee brand",
		"style":   "minimalist",
		"colors":  "earth tones",
	}

	result := es.Enhance(original, models.TypeLogo, answers)

	assert.Less(t, result.Before.Score, 40)
	assert.Contains(t, result.Prompt, original)
	assert.Contains(t, result.Prompt, "minimalist design")
	assert.Contains(t, result.Prompt, "color palette: earth tones")
	assert.Contains(t, result.Prompt, "designed for artisanal coffee brand")
	assert.Contains(t, result.Prompt, "scalable vector design")
	assert.GreaterOrEqual(t, result.After.Score, 70)
}

func TestEnhanceIdempotent(t *testing.T) {
	es := newEnhancer()

	answers := map[string]string{
		"purpose": "artisanal coffee brand",
		"style":   "minimalist",
		"colors":  "earth tones",
	}

	first := es.Enhance("Create a logo", models.TypeLogo, answers)
	second := es.Enhance(first.Prompt, models.TypeLogo, answers)

	assert.Equal(t, first.Prompt, second.Prompt)
	assert.Equal(t, first.After.Score, second.After.Score)
}

func TestEnhanceWithoutAnswersAppendsOnlyBoilerplate(t *testing.T) {
	es := newEnhancer()

	result := es.Enhance("A mountain at dawn", models.TypeLandscape, nil)
	assert.Equal(t, "A mountain at dawn, expansive natural lighting, rich depth of field", result.Prompt)
}

func TestEnhanceQuickModeCombinedAnswer(t *testing.T) {
	es := newEnhancer()

	// Quick mode records one reply under style_color, which feeds the style
	// and color derivations alike.
	answers := map[string]string{"style_color": "minimalist with warm tones"}
	result := es.Enhance("A poster of a lighthouse", models.TypeGeneral, answers)

	assert.Contains(t, result.Prompt, "minimalist design")
	assert.Contains(t, result.Prompt, "warm color palette")
}

func TestEnhanceTruncationPreservesOriginal(t *testing.T) {
	es := newEnhancer()

	original := strings.TrimSpace(strings.Repeat("a vast painted mural of city life ", 115))
	require.Greater(t, len(original), MaxPromptLength-200)

	answers := map[string]string{
		"style":  "photorealistic",
		"colors": "vibrant",
		"mood":   "dramatic",
	}
	result := es.Enhance(original, models.TypeIllustration, answers)

	assert.LessOrEqual(t, len(result.Prompt), MaxPromptLength)
	assert.Contains(t, result.Prompt, original)
	// Oldest clause survives longest under truncation.
	assert.Contains(t, result.Prompt, "photorealistic style")
}

func TestEnhanceTruncationDropsBoilerplateFirst(t *testing.T) {
	es := newEnhancer()

	// Just under the cap: the style clause fits but the boilerplate would
	// push past it.
	clause := "photorealistic style, high detail, professional photography"
	original := strings.Repeat("x", MaxPromptLength-len(clause)-4)

	result := es.Enhance(original, models.TypeLogo, map[string]string{"style": "photorealistic"})

	assert.LessOrEqual(t, len(result.Prompt), MaxPromptLength)
	assert.Contains(t, result.Prompt, original)
	assert.NotContains(t, result.Prompt, "scalable vector design")
	assert.Contains(t, result.Prompt, clause)
}
