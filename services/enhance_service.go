package services

import (
	"fmt"
	"strings"

	"github.com/michaeljabbour/openai-images-mcp/models"
)

// MaxPromptLength is the hard cap the Images API places on prompt text.
const MaxPromptLength = 4000

// EnhancedPrompt carries the final generation prompt together with the
// quality analysis before and after enhancement.
type EnhancedPrompt struct {
	Prompt string
	Before models.PromptAnalysis
	After  models.PromptAnalysis
}

// EnhanceService merges the original prompt with dialogue answers and
// type-specific boilerplate into the final generation prompt. Deterministic
// and idempotent: a clause already present is never appended again, and the
// user's original text is never truncated.
type EnhanceService struct {
	prompts *PromptService
}

func NewEnhanceService(prompts *PromptService) *EnhanceService {
	return &EnhanceService{prompts: prompts}
}

// Enhance builds the generation prompt. Clauses derived from answers are
// appended in a fixed category order, then the type boilerplate suffix.
// When the composed prompt would exceed MaxPromptLength, the boilerplate is
// dropped first, then answer clauses newest-first; the original prompt
// survives intact regardless.
func (es *EnhanceService) Enhance(original string, imageType models.ImageType, answers map[string]string) EnhancedPrompt {
	before := es.prompts.AnalyzePrompt(original, imageType)

	var clauses []string
	appendClause := func(clause string) {
		if clause == "" {
			return
		}
		composed := strings.ToLower(original + ", " + strings.Join(clauses, ", "))
		if strings.Contains(composed, strings.ToLower(clause)) {
			return
		}
		clauses = append(clauses, clause)
	}

	appendClause(styleClause(answerFor(answers, "style", "style_color")))
	appendClause(moodClause(answerFor(answers, "mood", "style_color")))
	appendClause(colorClause(answerFor(answers, "colors", "style_color")))
	appendClause(compositionClause(answers["composition"]))
	appendClause(detailClause(answers["detail_level"]))
	appendClause(elementsClause(answers["specific_elements"]))
	appendClause(useCaseClause(answers["purpose"]))

	boilerplate := typeBoilerplate(imageType)
	if strings.Contains(strings.ToLower(original), strings.ToLower(boilerplate)) {
		boilerplate = ""
	}

	prompt := compose(original, clauses, boilerplate)
	if len(prompt) > MaxPromptLength {
		boilerplate = ""
		prompt = compose(original, clauses, boilerplate)
	}
	for len(prompt) > MaxPromptLength && len(clauses) > 0 {
		clauses = clauses[:len(clauses)-1]
		prompt = compose(original, clauses, boilerplate)
	}

	return EnhancedPrompt{
		Prompt: prompt,
		Before: before,
		After:  es.prompts.AnalyzePrompt(prompt, imageType),
	}
}

func compose(original string, clauses []string, boilerplate string) string {
	parts := append([]string{original}, clauses...)
	if boilerplate != "" {
		parts = append(parts, boilerplate)
	}
	return strings.Join(parts, ", ")
}

// answerFor returns the first non-empty answer among the given keys. The
// quick mode records one combined reply under style_color, which feeds the
// style, mood, and color derivations alike.
func answerFor(answers map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(answers[k]); v != "" {
			return v
		}
	}
	return ""
}

func styleClause(answer string) string {
	lower := strings.ToLower(answer)
	switch {
	case answer == "":
		return ""
	case strings.Contains(lower, "photorealistic"):
		return "photorealistic style, high detail, professional photography"
	case strings.Contains(lower, "artistic") || strings.Contains(lower, "painterly"):
		return "artistic painting style, expressive brushwork"
	case strings.Contains(lower, "minimalist"):
		return "minimalist design, clean lines, simple composition"
	case strings.Contains(lower, "detailed") || strings.Contains(lower, "complex"):
		return "highly detailed, rich with elements"
	case strings.Contains(lower, "abstract"):
		return "abstract conceptual style, symbolic interpretation"
	default:
		return ""
	}
}

func moodClause(answer string) string {
	lower := strings.ToLower(answer)
	switch {
	case answer == "":
		return ""
	case strings.Contains(lower, "professional"):
		return "professional polished aesthetic"
	case strings.Contains(lower, "energetic"):
		return "energetic dynamic atmosphere"
	case strings.Contains(lower, "calm") || strings.Contains(lower, "peaceful"):
		return "calm peaceful serene mood"
	case strings.Contains(lower, "dramatic"):
		return "bold dramatic lighting"
	case strings.Contains(lower, "warm") || strings.Contains(lower, "inviting"):
		return "warm inviting atmosphere"
	case strings.Contains(lower, "modern"):
		return "modern cutting-edge aesthetic"
	default:
		return ""
	}
}

func colorClause(answer string) string {
	lower := strings.ToLower(answer)
	switch {
	case answer == "":
		return ""
	case strings.Contains(lower, "warm"):
		return "warm color palette with reds, oranges, and yellows"
	case strings.Contains(lower, "cool"):
		return "cool color palette with blues, greens, and purples"
	case strings.Contains(lower, "neutral") || strings.Contains(lower, "monochrome"):
		return "neutral monochromatic color scheme"
	case strings.Contains(lower, "vibrant") || strings.Contains(lower, "saturated"):
		return "vibrant saturated colors, bold and energetic"
	case strings.Contains(lower, "muted") || strings.Contains(lower, "pastel"):
		return "muted pastel tones, soft and subtle"
	default:
		// The user named specific colors; carry them through verbatim.
		return "color palette: " + answer
	}
}

func compositionClause(answer string) string {
	lower := strings.ToLower(answer)
	switch {
	case answer == "":
		return ""
	case strings.Contains(lower, "centered"):
		return "centered composition, balanced framing"
	case strings.Contains(lower, "rule of thirds"):
		return "rule of thirds composition, dynamic placement"
	case strings.Contains(lower, "close-up") || strings.Contains(lower, "intimate"):
		return "close-up intimate view, focus on details"
	case strings.Contains(lower, "wide"):
		return "wide establishing shot, contextual view"
	default:
		return ""
	}
}

func detailClause(answer string) string {
	lower := strings.ToLower(answer)
	switch {
	case answer == "":
		return ""
	case strings.Contains(lower, "highly detailed"):
		return "highly detailed, intricate elements"
	case strings.Contains(lower, "minimalist"):
		return "minimalist approach, focus on essentials"
	default:
		return ""
	}
}

func elementsClause(answer string) string {
	if strings.TrimSpace(answer) == "" {
		return ""
	}
	return "include: " + strings.TrimSpace(answer)
}

func useCaseClause(answer string) string {
	lower := strings.ToLower(answer)
	switch {
	case answer == "":
		return ""
	case strings.Contains(lower, "web") || strings.Contains(lower, "digital"):
		return "optimized for digital display"
	case strings.Contains(lower, "print"):
		return "high contrast suitable for print"
	case strings.Contains(lower, "social"):
		return "eye-catching for social media"
	default:
		return fmt.Sprintf("designed for %s", strings.TrimSpace(answer))
	}
}

func typeBoilerplate(imageType models.ImageType) string {
	switch imageType {
	case models.TypeLogo:
		return "professional quality, scalable vector design, clean lines, suitable for branding"
	case models.TypePresentation:
		return "high contrast, clear composition, suitable for slides"
	case models.TypeSocialMedia:
		return "eye-catching, engaging visual"
	case models.TypeProduct:
		return "professional product photography, studio lighting"
	case models.TypePortrait:
		return "professional portrait lighting, flattering framing"
	case models.TypeLandscape:
		return "expansive natural lighting, rich depth of field"
	case models.TypeIllustration:
		return "polished illustration, consistent line work"
	case models.TypeAbstract:
		return "strong visual rhythm, intentional color balance"
	default:
		return "high quality, professional aesthetic"
	}
}
