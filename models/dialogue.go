package models

// DialogueMode controls how many clarifying questions are asked before an
// image is generated.
type DialogueMode string

const (
	ModeQuick    DialogueMode = "quick"    // 1-2 questions, fast path
	ModeGuided   DialogueMode = "guided"   // 3-5 questions, balanced (default)
	ModeExplorer DialogueMode = "explorer" // deep exploration, 6+ questions
	ModeSkip     DialogueMode = "skip"     // direct generation, no dialogue
)

// ParseDialogueMode maps user input to a mode, defaulting to guided.
func ParseDialogueMode(s string) DialogueMode {
	switch DialogueMode(s) {
	case ModeQuick, ModeGuided, ModeExplorer, ModeSkip:
		return DialogueMode(s)
	default:
		return ModeGuided
	}
}

// DialogueStage is the engine's position in the clarification flow. The
// stage cursor is persisted on the conversation record so resumed sessions
// are unambiguous.
type DialogueStage string

const (
	StageInitial          DialogueStage = "initial"
	StageStyleExploration DialogueStage = "style"
	StageColorMood        DialogueStage = "color_mood"
	StageDetails          DialogueStage = "details"
	StageReady            DialogueStage = "ready"
)

// DialogueQuestion is one clarifying question bound to a stage. Key is the
// answer-map key the reply is recorded under.
type DialogueQuestion struct {
	Key      string        `json:"key"`
	Stage    DialogueStage `json:"stage"`
	Question string        `json:"question"`
	Options  []string      `json:"options,omitempty"`
	Context  string        `json:"context,omitempty"`
}
