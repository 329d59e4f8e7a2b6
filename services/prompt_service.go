package services

import (
	"strings"

	"github.com/michaeljabbour/openai-images-mcp/models"
)

// typeKeywords pairs an image type with the phrases that identify it.
// Order matters: more specific categories come first and the first match
// wins, so "logo for my presentation deck" detects as a presentation.
type typeKeywords struct {
	imageType models.ImageType
	keywords  []string
}

// PromptService detects image types and scores prompt completeness. Pure
// keyword matching over fixed tables; deterministic and total.
type PromptService struct {
	typeOrder   []typeKeywords
	styleWords  []string
	moodWords   []string
	colorWords  []string
	compWords   []string
	detailWords []string
}

func NewPromptService() *PromptService {
	return &PromptService{
		typeOrder: []typeKeywords{
			{models.TypeSocialMedia, []string{"instagram", "facebook", "twitter", "social media", "social post"}},
			{models.TypeAbstract, []string{"abstract art", "abstract geometric", "abstract painting", "abstract"}},
			{models.TypePresentation, []string{"presentation", "slide", "deck", "powerpoint"}},
			{models.TypeLogo, []string{"logo", "brand", "icon", "emblem", "mark"}},
			{models.TypePortrait, []string{"portrait", "headshot", "person", "face", "selfie"}},
			{models.TypeLandscape, []string{"landscape", "scenery", "vista", "horizon"}},
			{models.TypeProduct, []string{"product", "merchandise", "item", "commercial"}},
			{models.TypeIllustration, []string{"illustration", "drawing", "artwork", "sketch"}},
		},
		styleWords: []string{
			"photorealistic", "artistic", "painterly", "minimalist", "abstract",
			"cinematic", "dramatic", "professional", "modern", "vintage",
			"contemporary", "traditional", "futuristic", "rustic",
		},
		moodWords: []string{
			"calm", "peaceful", "energetic", "dramatic", "mysterious",
			"cheerful", "moody", "bright", "dark", "warm", "cool",
			"inviting", "bold", "subtle", "intense", "serene",
		},
		colorWords: []string{
			"red", "blue", "green", "yellow", "purple", "orange", "pink",
			"warm", "cool", "vibrant", "muted", "pastel", "neon",
			"monochrome", "colorful", "black", "white", "gray",
			"palette", "tones",
		},
		compWords: []string{
			"centered", "rule of thirds", "close-up", "wide angle",
			"symmetrical", "asymmetrical", "balanced", "dynamic",
			"foreground", "background", "depth of field",
			"composition", "framing",
		},
		detailWords: []string{
			"highly detailed", "intricate", "fine detail", "rich with elements",
			"minimalist", "clean", "simple",
		},
	}
}

// DetectImageType classifies a prompt into one of the fixed categories,
// falling back to general when nothing matches.
func (ps *PromptService) DetectImageType(prompt string) models.ImageType {
	lower := strings.ToLower(prompt)
	for _, entry := range ps.typeOrder {
		if containsAny(lower, entry.keywords) {
			return entry.imageType
		}
	}
	return models.TypeGeneral
}

// SuggestSize picks an aspect configuration for the detected type. Explicit
// orientation hints in the prompt override the type table.
func (ps *PromptService) SuggestSize(imageType models.ImageType, prompt string) models.ImageSize {
	lower := strings.ToLower(prompt)

	switch {
	case containsAny(lower, []string{"story", "stories", "vertical"}):
		return models.SizePortrait
	case containsAny(lower, []string{"wide", "horizontal"}):
		return models.SizeLandscape
	}

	switch imageType {
	case models.TypePortrait:
		return models.SizePortrait
	case models.TypePresentation, models.TypeLandscape:
		return models.SizeLandscape
	default:
		return models.SizeSquare
	}
}

// Scoring weights. A word-count baseline plus fixed per-category bonuses,
// clamped to [0,100].
const (
	pointsPerWord    = 4
	maxBaseline      = 20
	styleBonus       = 20
	colorBonus       = 20
	moodBonus        = 20
	compositionBonus = 10
	detailBonus      = 10
)

// AnalyzePrompt scores a prompt's completeness and lists the attribute
// categories it is missing. Empty input yields score 0 with everything
// missing; the function never fails.
func (ps *PromptService) AnalyzePrompt(prompt string, imageType models.ImageType) models.PromptAnalysis {
	lower := strings.ToLower(prompt)
	words := len(strings.Fields(prompt))

	analysis := models.PromptAnalysis{
		ImageType:      imageType,
		HasSubject:     words >= 3,
		HasStyle:       containsAny(lower, ps.styleWords),
		HasColors:      containsAny(lower, ps.colorWords),
		HasMood:        containsAny(lower, ps.moodWords),
		HasComposition: containsAny(lower, ps.compWords),
		HasDetail:      containsAny(lower, ps.detailWords),
	}

	score := words * pointsPerWord
	if score > maxBaseline {
		score = maxBaseline
	}
	if analysis.HasStyle {
		score += styleBonus
	}
	if analysis.HasColors {
		score += colorBonus
	}
	if analysis.HasMood {
		score += moodBonus
	}
	if analysis.HasComposition {
		score += compositionBonus
	}
	if analysis.HasDetail {
		score += detailBonus
	}
	if score > 100 {
		score = 100
	}
	analysis.Score = score

	if !analysis.HasStyle {
		analysis.Missing = append(analysis.Missing, models.ElementStyle)
		analysis.Suggestions = append(analysis.Suggestions, "Consider adding a visual style (photorealistic, artistic, minimalist)")
	}
	if !analysis.HasColors {
		analysis.Missing = append(analysis.Missing, models.ElementColor)
		analysis.Suggestions = append(analysis.Suggestions, "Consider specifying a color palette (warm tones, vibrant colors, monochrome)")
	}
	if !analysis.HasMood {
		analysis.Missing = append(analysis.Missing, models.ElementMood)
		analysis.Suggestions = append(analysis.Suggestions, "Specify the mood or atmosphere (dramatic, peaceful, energetic)")
	}
	if !analysis.HasComposition {
		analysis.Missing = append(analysis.Missing, models.ElementComposition)
		analysis.Suggestions = append(analysis.Suggestions, "Describe the composition (centered, rule of thirds, close-up)")
	}
	if !analysis.HasDetail {
		analysis.Missing = append(analysis.Missing, models.ElementDetail)
		analysis.Suggestions = append(analysis.Suggestions, "Say how detailed it should be (highly detailed, minimalist)")
	}

	return analysis
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
