package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/michaeljabbour/openai-images-mcp/models"
)

func TestDetectImageType(t *testing.T) {
	ps := NewPromptService()

	cases := []struct {
		prompt string
		want   models.ImageType
	}{
		{"Create a logo for my startup", models.TypeLogo},
		{"An instagram post about coffee", models.TypeSocialMedia},
		{"Slide background for a quarterly review", models.TypePresentation},
		{"A portrait of an old fisherman", models.TypePortrait},
		{"Mountain landscape at dawn", models.TypeLandscape},
		{"Product shot of a ceramic mug", models.TypeProduct},
		{"An illustration of a fox", models.TypeIllustration},
		{"Abstract geometric pattern", models.TypeAbstract},
		{"A cat sleeping on a windowsill", models.TypeGeneral},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ps.DetectImageType(tc.prompt), tc.prompt)
	}
}

func TestDetectImageTypePrecedence(t *testing.T) {
	ps := NewPromptService()

	// Two categories match; the more specific one wins.
	assert.Equal(t, models.TypePresentation, ps.DetectImageType("logo for my presentation deck"))
	assert.Equal(t, models.TypeSocialMedia, ps.DetectImageType("instagram post with our logo"))
}

func TestSuggestSize(t *testing.T) {
	ps := NewPromptService()

	// Explicit orientation hints beat the type table.
	assert.Equal(t, models.SizePortrait, ps.SuggestSize(models.TypeGeneral, "vertical banner art"))
	assert.Equal(t, models.SizeLandscape, ps.SuggestSize(models.TypeLogo, "wide header image"))
	assert.Equal(t, models.SizePortrait, ps.SuggestSize(models.TypeSocialMedia, "image for my instagram story"))

	assert.Equal(t, models.SizePortrait, ps.SuggestSize(models.TypePortrait, "a headshot"))
	assert.Equal(t, models.SizeLandscape, ps.SuggestSize(models.TypePresentation, "a slide"))
	assert.Equal(t, models.SizeSquare, ps.SuggestSize(models.TypeLogo, "a logo"))
}

func TestAnalyzePromptBounds(t *testing.T) {
	ps := NewPromptService()

	prompts := []string{
		"",
		"cat",
		"Create a logo",
		"photorealistic warm peaceful centered highly detailed scene of a harbor at dusk",
		"a very long prompt with many words that keeps going on and on past the baseline cap",
	}
	for _, p := range prompts {
		analysis := ps.AnalyzePrompt(p, ps.DetectImageType(p))
		assert.GreaterOrEqual(t, analysis.Score, 0, p)
		assert.LessOrEqual(t, analysis.Score, 100, p)
	}
}

func TestAnalyzePromptMissingConsistency(t *testing.T) {
	ps := NewPromptService()

	analysis := ps.AnalyzePrompt("photorealistic warm harbor at dusk", models.TypeGeneral)

	missing := map[string]bool{}
	for _, m := range analysis.Missing {
		missing[m] = true
	}
	assert.Equal(t, !missing[models.ElementStyle], analysis.HasStyle)
	assert.Equal(t, !missing[models.ElementColor], analysis.HasColors)
	assert.Equal(t, !missing[models.ElementMood], analysis.HasMood)
	assert.Equal(t, !missing[models.ElementComposition], analysis.HasComposition)
	assert.Equal(t, !missing[models.ElementDetail], analysis.HasDetail)
	assert.Len(t, analysis.Suggestions, len(analysis.Missing))
}

func TestAnalyzePromptEmpty(t *testing.T) {
	ps := NewPromptService()

	analysis := ps.AnalyzePrompt("", models.TypeGeneral)
	assert.Equal(t, 0, analysis.Score)
	assert.Len(t, analysis.Missing, 5)
}

func TestAnalyzeBarePromptScoresLow(t *testing.T) {
	ps := NewPromptService()

	analysis := ps.AnalyzePrompt("Create a logo", models.TypeLogo)
	assert.Less(t, analysis.Score, 40)
	assert.Contains(t, analysis.Missing, models.ElementStyle)
	assert.Contains(t, analysis.Missing, models.ElementColor)
	assert.Contains(t, analysis.Missing, models.ElementMood)
}
