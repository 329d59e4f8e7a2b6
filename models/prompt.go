package models

// ImageType is the detected image-use category. It drives question
// templates, enhancement boilerplate, and size hints.
type ImageType string

const (
	TypeLogo         ImageType = "logo"
	TypePresentation ImageType = "presentation"
	TypeSocialMedia  ImageType = "social_media"
	TypePortrait     ImageType = "portrait"
	TypeLandscape    ImageType = "landscape"
	TypeProduct      ImageType = "product"
	TypeAbstract     ImageType = "abstract"
	TypeIllustration ImageType = "illustration"
	TypeGeneral      ImageType = "general"
)

// ImageSize is one of the three aspect configurations gpt-image-1 accepts.
type ImageSize string

const (
	SizeSquare    ImageSize = "1024x1024"
	SizePortrait  ImageSize = "1024x1536"
	SizeLandscape ImageSize = "1536x1024"
)

// Prompt attribute categories checked by the quality scorer.
const (
	ElementStyle       = "style"
	ElementColor       = "color"
	ElementMood        = "mood"
	ElementComposition = "composition"
	ElementDetail      = "detail"
)

// PromptAnalysis is the quality assessment of a prompt: a 0-100
// completeness score plus the attribute categories it is missing.
// Recomputed on demand, never persisted on its own.
type PromptAnalysis struct {
	Score          int       `json:"score"`
	ImageType      ImageType `json:"image_type"`
	Missing        []string  `json:"missing_elements"`
	Suggestions    []string  `json:"suggestions"`
	HasSubject     bool      `json:"has_subject"`
	HasStyle       bool      `json:"has_style"`
	HasColors      bool      `json:"has_colors"`
	HasMood        bool      `json:"has_mood"`
	HasComposition bool      `json:"has_composition"`
	HasDetail      bool      `json:"has_detail"`
}

// Severity marks how important a checklist item is. Informational only:
// verification never blocks delivery.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityInfo     Severity = "info"
)

// ChecklistItem is one thing the user should confirm about the delivered
// image.
type ChecklistItem struct {
	Label    string   `json:"label"`
	Detail   string   `json:"detail"`
	Severity Severity `json:"severity"`
}

// VerificationResult is the advisory post-generation checklist. It is
// derived purely from the prompt and dialogue answers; image pixels are
// never inspected, so there is no pass/fail.
type VerificationResult struct {
	Checklist  []ChecklistItem `json:"checklist"`
	Confidence float64         `json:"confidence"`
}
