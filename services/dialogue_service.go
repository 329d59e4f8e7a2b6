package services

import (
	"github.com/michaeljabbour/openai-images-mcp/models"
)

// DialogueService drives the clarification state machine:
// initial -> style -> color_mood -> details -> ready. Each mode owns a
// question plan; recording an answer is the only transition trigger and the
// dialogue always terminates within the mode's question budget.
type DialogueService struct{}

func NewDialogueService() *DialogueService {
	return &DialogueService{}
}

// Budget returns the maximum number of questions a mode may ask for the
// given image type.
func (ds *DialogueService) Budget(mode models.DialogueMode, imageType models.ImageType) int {
	switch mode {
	case models.ModeSkip:
		return 0
	case models.ModeQuick:
		return 2
	case models.ModeExplorer:
		return 7
	default: // guided
		switch imageType {
		case models.TypeLogo, models.TypeSocialMedia:
			return 3
		default:
			return 4
		}
	}
}

// Plan returns the ordered questions for a mode and type, already capped to
// the mode's budget. When a stage has no template left for the type the
// plan simply ends, so the dialogue terminates rather than erroring.
func (ds *DialogueService) Plan(mode models.DialogueMode, imageType models.ImageType) []models.DialogueQuestion {
	var plan []models.DialogueQuestion

	switch mode {
	case models.ModeSkip:
		return nil
	case models.ModeQuick:
		plan = []models.DialogueQuestion{
			purposeQuestion(imageType),
			{
				Key:      "style_color",
				Stage:    models.StageStyleExploration,
				Question: "Any specific style, colors, or mood in mind? (e.g. 'minimalist with warm sunset tones')",
				Context:  "One answer covers style and color on the fast path",
			},
		}
	case models.ModeExplorer:
		plan = []models.DialogueQuestion{
			purposeQuestion(imageType),
			styleQuestion(),
			colorsQuestion(),
			moodQuestion(),
			detailLevelQuestion(),
			compositionQuestion(),
			{
				Key:      "specific_elements",
				Stage:    models.StageDetails,
				Question: "Any specific elements to include or avoid?",
				Context:  "Fine-tuning ensures the image matches your vision",
			},
		}
	default: // guided
		plan = []models.DialogueQuestion{
			purposeQuestion(imageType),
			styleQuestion(),
			colorsQuestion(),
			moodQuestion(),
		}
	}

	if budget := ds.Budget(mode, imageType); len(plan) > budget {
		plan = plan[:budget]
	}
	return plan
}

// NextQuestion returns the question for the conversation's current position,
// or nil exactly when the dialogue is ready for generation. A stage already
// answered is never re-asked. The stage cursor on the conversation is
// updated as a side effect.
func (ds *DialogueService) NextQuestion(conv *models.Conversation) *models.DialogueQuestion {
	for _, q := range ds.Plan(conv.Mode, conv.ImageType) {
		if _, answered := conv.Answers[q.Key]; !answered {
			question := q
			conv.Stage = q.Stage
			return &question
		}
	}
	conv.Stage = models.StageReady
	return nil
}

// RecordAnswer stores the reply to the current question and advances the
// stage cursor. Recording against a terminal dialogue is a no-op.
func (ds *DialogueService) RecordAnswer(conv *models.Conversation, answer string) {
	q := ds.NextQuestion(conv)
	if q == nil {
		return
	}
	conv.SetAnswer(q.Key, answer)
	ds.NextQuestion(conv)
}

// Progress reports how far along the dialogue is, for status displays.
func (ds *DialogueService) Progress(conv *models.Conversation) (answered, total int) {
	plan := ds.Plan(conv.Mode, conv.ImageType)
	for _, q := range plan {
		if _, ok := conv.Answers[q.Key]; ok {
			answered++
		}
	}
	return answered, len(plan)
}

func purposeQuestion(imageType models.ImageType) models.DialogueQuestion {
	switch imageType {
	case models.TypeLogo:
		return models.DialogueQuestion{
			Key:      "purpose",
			Stage:    models.StageInitial,
			Question: "Tell me about what this logo represents. What should it communicate?",
			Context:  "Understanding your brand helps create a logo that resonates",
		}
	case models.TypePresentation:
		return models.DialogueQuestion{
			Key:      "purpose",
			Stage:    models.StageInitial,
			Question: "What's the presentation about? Who's the audience?",
			Options: []string{
				"Corporate/professional audience",
				"Academic/educational setting",
				"Public/general audience",
			},
			Context: "Presentation context affects visual style",
		}
	case models.TypeSocialMedia:
		return models.DialogueQuestion{
			Key:      "purpose",
			Stage:    models.StageInitial,
			Question: "What's the goal of this social media post?",
			Options: []string{
				"Eye-catching and shareable",
				"Professional brand content",
				"Personal/authentic vibe",
			},
			Context: "Social media images need to grab attention quickly",
		}
	default:
		return models.DialogueQuestion{
			Key:      "purpose",
			Stage:    models.StageInitial,
			Question: "How will you use this image?",
			Options: []string{
				"Web/digital display",
				"Print material",
				"Personal art/creative project",
				"Reference/concept exploration",
			},
			Context: "Use case helps optimize the image",
		}
	}
}

func styleQuestion() models.DialogueQuestion {
	return models.DialogueQuestion{
		Key:      "style",
		Stage:    models.StageStyleExploration,
		Question: "What visual style appeals to you?",
		Options: []string{
			"Photorealistic (like a photograph)",
			"Artistic/Painterly (expressive, creative)",
			"Minimalist (clean, simple lines)",
			"Detailed/Complex (rich with elements)",
			"Abstract/Conceptual (symbolic, interpretive)",
		},
		Context: "Style choice dramatically affects the final image",
	}
}

func colorsQuestion() models.DialogueQuestion {
	return models.DialogueQuestion{
		Key:      "colors",
		Stage:    models.StageColorMood,
		Question: "What color palette works best?",
		Options: []string{
			"Warm colors (reds, oranges, yellows)",
			"Cool colors (blues, greens, purples)",
			"Neutral/Monochrome (blacks, whites, grays)",
			"Vibrant/Saturated (bold, energetic)",
			"Muted/Pastel (soft, subtle)",
			"Specific colors (tell me which)",
		},
		Context: "Color psychology affects how viewers feel",
	}
}

func moodQuestion() models.DialogueQuestion {
	return models.DialogueQuestion{
		Key:      "mood",
		Stage:    models.StageColorMood,
		Question: "What mood or atmosphere should it convey?",
		Options: []string{
			"Professional & polished",
			"Energetic & dynamic",
			"Calm & peaceful",
			"Bold & dramatic",
			"Warm & inviting",
			"Modern & cutting-edge",
		},
		Context: "Mood guides lighting and composition choices",
	}
}

func detailLevelQuestion() models.DialogueQuestion {
	return models.DialogueQuestion{
		Key:      "detail_level",
		Stage:    models.StageDetails,
		Question: "How detailed should it be?",
		Options: []string{
			"Highly detailed (rich with elements)",
			"Balanced (some detail, not overwhelming)",
			"Minimalist (focus on essentials)",
		},
		Context: "Detail level affects visual impact",
	}
}

func compositionQuestion() models.DialogueQuestion {
	return models.DialogueQuestion{
		Key:      "composition",
		Stage:    models.StageDetails,
		Question: "Any composition preferences?",
		Options: []string{
			"Centered subject (traditional, balanced)",
			"Rule of thirds (dynamic, professional)",
			"Close-up/Intimate (focus on details)",
			"Wide view (show context)",
			"Let the model decide",
		},
		Context: "Composition affects visual flow",
	}
}
