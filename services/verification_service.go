package services

import (
	"fmt"
	"strings"

	"github.com/michaeljabbour/openai-images-mcp/models"
)

// VerificationService builds the advisory post-generation checklist. It is
// derived from the prompt and dialogue answers only; the generated pixels
// are never inspected, so it can never block delivery. Binding it to an
// image-understanding step would be a separate, explicit decision.
type VerificationService struct{}

func NewVerificationService() *VerificationService {
	return &VerificationService{}
}

// Confidence without an actual vision check stays fixed and conservative.
const verificationConfidence = 0.85

// answerOrder fixes the checklist position of known dialogue answer keys so
// the result is deterministic.
var answerOrder = []string{
	"purpose", "style", "style_color", "colors", "mood",
	"detail_level", "composition", "specific_elements",
}

// BuildChecklist produces the items the user should self-check against the
// delivered image.
func (vs *VerificationService) BuildChecklist(original string, imageType models.ImageType, answers map[string]string) models.VerificationResult {
	items := []models.ChecklistItem{
		{
			Label:    "Subject Matter",
			Detail:   fmt.Sprintf("Image contains: %s", original),
			Severity: models.SeverityCritical,
		},
	}

	switch imageType {
	case models.TypeLogo:
		items = append(items, models.ChecklistItem{
			Label:    "Logo Quality",
			Detail:   "Clean, scalable design suitable for branding",
			Severity: models.SeverityHigh,
		})
	case models.TypePresentation:
		items = append(items, models.ChecklistItem{
			Label:    "Presentation Suitability",
			Detail:   "High contrast, clear composition for slides",
			Severity: models.SeverityHigh,
		})
	case models.TypeSocialMedia:
		items = append(items, models.ChecklistItem{
			Label:    "Social Media Appeal",
			Detail:   "Eye-catching, engaging for social feeds",
			Severity: models.SeverityHigh,
		})
	case models.TypeProduct:
		items = append(items, models.ChecklistItem{
			Label:    "Product Presentation",
			Detail:   "Clean background and lighting that highlight the product",
			Severity: models.SeverityHigh,
		})
	}

	if quoted := quotedText(original); quoted != "" {
		items = append(items, models.ChecklistItem{
			Label:    "Text Legibility",
			Detail:   fmt.Sprintf("The text %q appears and is readable", quoted),
			Severity: models.SeverityHigh,
		})
	}

	for _, key := range answerOrder {
		answer, ok := answers[key]
		if !ok || strings.TrimSpace(answer) == "" {
			continue
		}
		items = append(items, models.ChecklistItem{
			Label:    "Your Requirement",
			Detail:   fmt.Sprintf("%s: %s", answerLabel(key), answer),
			Severity: models.SeverityInfo,
		})
	}

	items = append(items, models.ChecklistItem{
		Label:    "Overall Quality",
		Detail:   "Professional quality, no artifacts or errors",
		Severity: models.SeverityHigh,
	})

	return models.VerificationResult{
		Checklist:  items,
		Confidence: verificationConfidence,
	}
}

// FormatReport renders a verification result as markdown for CLI output.
func (vs *VerificationService) FormatReport(result models.VerificationResult) string {
	var b strings.Builder
	b.WriteString("### Verification Checklist\n")
	fmt.Fprintf(&b, "Confidence: %d%%\n\n", int(result.Confidence*100))
	for _, item := range result.Checklist {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", item.Severity, item.Label, item.Detail)
	}
	b.WriteString("\nReview the image against this list; if something is off, describe the change and refine.\n")
	return b.String()
}

// quotedText returns the first double-quoted span in the prompt, if any.
// Prompts that ask for literal text get a legibility checklist item.
func quotedText(prompt string) string {
	start := strings.Index(prompt, `"`)
	if start < 0 {
		return ""
	}
	rest := prompt[start+1:]
	end := strings.Index(rest, `"`)
	if end <= 0 {
		return ""
	}
	return rest[:end]
}

func answerLabel(key string) string {
	switch key {
	case "purpose":
		return "Purpose"
	case "style":
		return "Style"
	case "style_color":
		return "Style and color"
	case "colors":
		return "Colors"
	case "mood":
		return "Mood"
	case "detail_level":
		return "Detail level"
	case "composition":
		return "Composition"
	case "specific_elements":
		return "Specific elements"
	default:
		return key
	}
}
