package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/michaeljabbour/openai-images-mcp/models"
)

const (
	imageModel        = "gpt-image-1"
	generationRetries = 3
)

// GenerationErrorKind is the typed failure reason surfaced to callers.
type GenerationErrorKind string

const (
	ErrKindRateLimited    GenerationErrorKind = "rate_limited"
	ErrKindPolicyRejected GenerationErrorKind = "policy_rejected"
	ErrKindTransport      GenerationErrorKind = "transport"
)

// GenerationError wraps an image API failure with its kind so the caller
// can report it without string matching.
type GenerationError struct {
	Kind    GenerationErrorKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("image generation failed (%s): %s", e.Kind, e.Message)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// GeneratedImage is the collaborator's successful result: decoded bytes
// plus the provider's revised prompt when it returns one.
type GeneratedImage struct {
	Data          []byte
	RevisedPrompt string
}

// ImageGenerator is the outbound boundary to the image API. The engine
// makes exactly one blocking call per turn; retry with backoff lives here,
// behind the boundary, not in the turn loop.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string, size models.ImageSize) (*GeneratedImage, error)
}

// OpenAIService generates images with gpt-image-1. The model answers with
// base64 payloads; URL responses are downloaded as a fallback.
type OpenAIService struct {
	client  *openai.Client
	http    *resty.Client
	retries int
}

func NewOpenAIService(apiKey string) *OpenAIService {
	return &OpenAIService{
		client:  openai.NewClient(apiKey),
		http:    resty.New().SetTimeout(60 * time.Second),
		retries: generationRetries,
	}
}

func (s *OpenAIService) Generate(ctx context.Context, prompt string, size models.ImageSize) (*GeneratedImage, error) {
	var lastErr error
	for attempt := 0; attempt < s.retries; attempt++ {
		if attempt > 0 {
			// Exponential backoff between attempts, bailing out if the
			// caller's context ends first.
			select {
			case <-time.After(time.Duration(1<<(attempt-1)) * time.Second):
			case <-ctx.Done():
				return nil, &GenerationError{Kind: ErrKindTransport, Message: "generation canceled", Err: ctx.Err()}
			}
		}

		resp, err := s.client.CreateImage(ctx, openai.ImageRequest{
			Model:          imageModel,
			Prompt:         prompt,
			N:              1,
			Size:           string(size),
			ResponseFormat: openai.CreateImageResponseFormatB64JSON,
		})
		if err != nil {
			genErr := classifyAPIError(err)
			if genErr.Kind == ErrKindPolicyRejected {
				return nil, genErr
			}
			lastErr = genErr
			continue
		}
		if len(resp.Data) == 0 {
			lastErr = &GenerationError{Kind: ErrKindTransport, Message: "image response contained no data"}
			continue
		}

		image := resp.Data[0]
		if image.B64JSON != "" {
			data, err := base64.StdEncoding.DecodeString(image.B64JSON)
			if err != nil {
				return nil, &GenerationError{Kind: ErrKindTransport, Message: "invalid base64 image payload", Err: err}
			}
			return &GeneratedImage{Data: data, RevisedPrompt: image.RevisedPrompt}, nil
		}
		if image.URL != "" {
			data, err := s.download(ctx, image.URL)
			if err != nil {
				lastErr = err
				continue
			}
			return &GeneratedImage{Data: data, RevisedPrompt: image.RevisedPrompt}, nil
		}
		lastErr = &GenerationError{Kind: ErrKindTransport, Message: "image response had neither base64 payload nor URL"}
	}
	if genErr, ok := lastErr.(*GenerationError); ok {
		return nil, genErr
	}
	return nil, &GenerationError{Kind: ErrKindTransport, Message: "image generation failed", Err: lastErr}
}

// download fetches image bytes when the API hands back a URL instead of a
// base64 payload.
func (s *OpenAIService) download(ctx context.Context, url string) ([]byte, error) {
	resp, err := s.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &GenerationError{Kind: ErrKindTransport, Message: "image download failed", Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &GenerationError{
			Kind:    ErrKindTransport,
			Message: fmt.Sprintf("image download failed with status %d", resp.StatusCode()),
		}
	}
	return resp.Body(), nil
}

func classifyAPIError(err error) *GenerationError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &GenerationError{Kind: ErrKindRateLimited, Message: "image API rate limit hit", Err: err}
		case apiErr.HTTPStatusCode == http.StatusBadRequest && isPolicyRejection(apiErr):
			return &GenerationError{Kind: ErrKindPolicyRejected, Message: "prompt rejected by content policy", Err: err}
		}
	}
	return &GenerationError{Kind: ErrKindTransport, Message: "image API request failed", Err: err}
}

func isPolicyRejection(apiErr *openai.APIError) bool {
	if code, ok := apiErr.Code.(string); ok && strings.Contains(code, "content_policy") {
		return true
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "safety") || strings.Contains(msg, "policy")
}
