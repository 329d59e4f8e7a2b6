package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/michaeljabbour/openai-images-mcp/metrics"
	"github.com/michaeljabbour/openai-images-mcp/models"
)

// TurnErrorKind classifies a failed turn for the transport layer.
type TurnErrorKind string

const (
	KindInvalidInput   TurnErrorKind = "invalid_input"
	KindNotFound       TurnErrorKind = "not_found"
	KindRateLimited    TurnErrorKind = "rate_limited"
	KindPolicyRejected TurnErrorKind = "policy_rejected"
	KindTransport      TurnErrorKind = "transport"
	KindStorage        TurnErrorKind = "storage"
)

// TurnError is the only error type the orchestrator returns.
type TurnError struct {
	Kind    TurnErrorKind
	Message string
	Err     error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *TurnError) Unwrap() error { return e.Err }

func turnErr(kind TurnErrorKind, msg string, err error) *TurnError {
	return &TurnError{Kind: kind, Message: msg, Err: err}
}

// TurnInput is one user turn: a fresh prompt starting a conversation, or an
// answer resuming one.
type TurnInput struct {
	Prompt         string
	ConversationID string
	Mode           string
	Answer         string
}

// TurnOutcome is the response to a turn. Question is set while the dialogue
// continues; FilePath and the quality fields are set when an image was
// delivered.
type TurnOutcome struct {
	ConversationID string
	Stage          models.DialogueStage
	Question       *models.DialogueQuestion
	FilePath       string
	Size           models.ImageSize
	QualityBefore  int
	QualityAfter   int
	Checklist      *models.VerificationResult
}

// TurnService wires the components into the per-turn cycle: detect and score
// the prompt, run the dialogue until terminal, enhance, call the image
// collaborator once, verify, persist. It holds no per-conversation state of
// its own; everything lives on the Conversation record.
type TurnService struct {
	store     ConversationStore
	prompts   *PromptService
	dialogue  *DialogueService
	enhancer  *EnhanceService
	verifier  *VerificationService
	generator ImageGenerator
	sink      ArtifactSink
	log       zerolog.Logger
}

func NewTurnService(
	store ConversationStore,
	prompts *PromptService,
	dialogue *DialogueService,
	enhancer *EnhanceService,
	verifier *VerificationService,
	generator ImageGenerator,
	sink ArtifactSink,
	log zerolog.Logger,
) *TurnService {
	return &TurnService{
		store:     store,
		prompts:   prompts,
		dialogue:  dialogue,
		enhancer:  enhancer,
		verifier:  verifier,
		generator: generator,
		sink:      sink,
		log:       log.With().Str("component", "turn").Logger(),
	}
}

// ProcessTurn handles one blocking turn. Question turns persist the
// conversation before responding. A generating turn persists only after the
// collaborator call succeeds, so a failed generation leaves the stored
// record unchanged and the turn can be retried.
func (ts *TurnService) ProcessTurn(ctx context.Context, in TurnInput) (*TurnOutcome, error) {
	conv, terr := ts.resolveConversation(in)
	if terr != nil {
		metrics.TurnsTotal.WithLabelValues("error").Inc()
		return nil, terr
	}

	if next := ts.dialogue.NextQuestion(conv); next != nil {
		conv.AppendMessage(models.RoleAssistant, next.Question)
		if err := ts.store.Save(conv); err != nil {
			metrics.TurnsTotal.WithLabelValues("error").Inc()
			return nil, turnErr(KindStorage, "failed to persist conversation", err)
		}
		metrics.QuestionsAsked.Inc()
		metrics.TurnsTotal.WithLabelValues("question").Inc()
		ts.log.Debug().
			Str("conversation_id", conv.ID).
			Str("stage", string(conv.Stage)).
			Str("question", next.Key).
			Msg("asking clarifying question")
		return &TurnOutcome{
			ConversationID: conv.ID,
			Stage:          conv.Stage,
			Question:       next,
		}, nil
	}

	return ts.generate(ctx, conv)
}

// resolveConversation loads or creates the conversation for this turn. An
// answer turn must name an existing conversation. A prompt turn naming a
// known id resumes that conversation (a refinement); a prompt turn with no
// id, or an unknown one, starts a new conversation with a new id. New
// conversations stay unpersisted here so a failed first turn leaves no
// record behind.
func (ts *TurnService) resolveConversation(in TurnInput) (*models.Conversation, *TurnError) {
	if answer := strings.TrimSpace(in.Answer); answer != "" {
		if in.ConversationID == "" {
			return nil, turnErr(KindInvalidInput, "answer requires a conversation_id", nil)
		}
		conv, err := ts.store.Load(in.ConversationID)
		if errors.Is(err, ErrNotFound) {
			return nil, turnErr(KindNotFound, fmt.Sprintf("conversation %s not found", in.ConversationID), err)
		}
		if err != nil {
			return nil, turnErr(KindStorage, "failed to load conversation", err)
		}
		conv.AppendMessage(models.RoleUser, answer)
		ts.dialogue.RecordAnswer(conv, answer)
		return conv, nil
	}

	prompt := strings.TrimSpace(in.Prompt)
	if prompt == "" {
		return nil, turnErr(KindInvalidInput, "prompt is required", nil)
	}

	if in.ConversationID != "" {
		conv, err := ts.store.Load(in.ConversationID)
		if err == nil {
			conv.AppendMessage(models.RoleUser, prompt)
			ts.recordRefinement(conv, prompt)
			ts.log.Info().
				Str("conversation_id", conv.ID).
				Msg("conversation resumed")
			return conv, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, turnErr(KindStorage, "failed to load conversation", err)
		}
	}

	conv := NewConversation(models.ParseDialogueMode(in.Mode))
	conv.OriginalPrompt = prompt
	conv.ImageType = ts.prompts.DetectImageType(prompt)
	conv.AppendMessage(models.RoleUser, prompt)
	ts.log.Info().
		Str("conversation_id", conv.ID).
		Str("image_type", string(conv.ImageType)).
		Str("mode", string(conv.Mode)).
		Msg("conversation started")
	return conv, nil
}

// recordRefinement folds a follow-up prompt into the request so the next
// generation reflects it. The detected type and collected answers stay as
// they are; only the prompt text grows.
func (ts *TurnService) recordRefinement(conv *models.Conversation, prompt string) {
	if conv.OriginalPrompt == "" {
		conv.OriginalPrompt = prompt
		conv.ImageType = ts.prompts.DetectImageType(prompt)
		return
	}
	if strings.Contains(strings.ToLower(conv.OriginalPrompt), strings.ToLower(prompt)) {
		return
	}
	conv.OriginalPrompt = conv.OriginalPrompt + ", " + prompt
}

// generate runs the terminal part of a turn: enhance, one collaborator call,
// sink, verify, persist, respond.
func (ts *TurnService) generate(ctx context.Context, conv *models.Conversation) (*TurnOutcome, error) {
	enhanced := ts.enhancer.Enhance(conv.OriginalPrompt, conv.ImageType, conv.Answers)
	size := ts.prompts.SuggestSize(conv.ImageType, conv.OriginalPrompt)

	image, err := ts.generator.Generate(ctx, enhanced.Prompt, size)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("failure").Inc()
		metrics.TurnsTotal.WithLabelValues("error").Inc()
		ts.log.Warn().
			Err(err).
			Str("conversation_id", conv.ID).
			Msg("image generation failed")
		return nil, generationTurnError(err)
	}

	path, err := ts.sink.Save(image.Data)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("failure").Inc()
		metrics.TurnsTotal.WithLabelValues("error").Inc()
		return nil, turnErr(KindStorage, "failed to save image artifact", err)
	}

	checklist := ts.verifier.BuildChecklist(conv.OriginalPrompt, conv.ImageType, conv.Answers)
	gen := models.Generation{
		ID:            "gen_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12],
		FilePath:      path,
		Prompt:        enhanced.Prompt,
		Size:          size,
		QualityBefore: enhanced.Before.Score,
		QualityAfter:  enhanced.After.Score,
		Verification:  checklist,
		CreatedAt:     time.Now(),
	}
	conv.Generations = append(conv.Generations, gen)
	conv.AppendMessage(models.RoleAssistant, fmt.Sprintf("Image generated and saved to %s", path))
	conv.Stage = models.StageReady

	if err := ts.store.Save(conv); err != nil {
		metrics.TurnsTotal.WithLabelValues("error").Inc()
		return nil, turnErr(KindStorage, "image saved but conversation persist failed", err)
	}

	metrics.GenerationsTotal.WithLabelValues("success").Inc()
	metrics.TurnsTotal.WithLabelValues("generated").Inc()
	ts.log.Info().
		Str("conversation_id", conv.ID).
		Str("file_path", path).
		Int("quality_before", enhanced.Before.Score).
		Int("quality_after", enhanced.After.Score).
		Msg("image delivered")

	return &TurnOutcome{
		ConversationID: conv.ID,
		Stage:          conv.Stage,
		FilePath:       path,
		Size:           size,
		QualityBefore:  enhanced.Before.Score,
		QualityAfter:   enhanced.After.Score,
		Checklist:      &checklist,
	}, nil
}

// generationTurnError maps a collaborator failure onto the turn error
// taxonomy, preserving the typed kind.
func generationTurnError(err error) *TurnError {
	if genErr, ok := err.(*GenerationError); ok {
		switch genErr.Kind {
		case ErrKindRateLimited:
			return turnErr(KindRateLimited, genErr.Message, err)
		case ErrKindPolicyRejected:
			return turnErr(KindPolicyRejected, genErr.Message, err)
		}
	}
	return turnErr(KindTransport, "image generation failed", err)
}
