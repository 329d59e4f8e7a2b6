package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/michaeljabbour/openai-images-mcp/services"
)

// ImageController exposes the turn cycle and conversation maintenance over
// the loopback HTTP surface.
type ImageController struct {
	turns *services.TurnService
	store services.ConversationStore
	log   zerolog.Logger
}

func NewImageController(turns *services.TurnService, store services.ConversationStore, log zerolog.Logger) *ImageController {
	return &ImageController{
		turns: turns,
		store: store,
		log:   log.With().Str("component", "http").Logger(),
	}
}

// HandleTurn runs one dialogue turn. The response carries either the next
// clarifying question or the delivered image with its checklist.
func (ic *ImageController) HandleTurn(c *gin.Context) {
	var request struct {
		Prompt         string `json:"prompt"`
		ConversationID string `json:"conversation_id"`
		Mode           string `json:"mode"`
		Answer         string `json:"answer"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "kind": services.KindInvalidInput})
		return
	}

	outcome, err := ic.turns.ProcessTurn(c.Request.Context(), services.TurnInput{
		Prompt:         request.Prompt,
		ConversationID: request.ConversationID,
		Mode:           request.Mode,
		Answer:         request.Answer,
	})
	if err != nil {
		ic.renderTurnError(c, err)
		return
	}

	if outcome.Question != nil {
		c.JSON(http.StatusOK, gin.H{
			"conversation_id": outcome.ConversationID,
			"stage":           outcome.Stage,
			"question":        outcome.Question.Question,
			"options":         outcome.Question.Options,
			"context":         outcome.Question.Context,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversation_id": outcome.ConversationID,
		"stage":           outcome.Stage,
		"file_path":       outcome.FilePath,
		"size":            outcome.Size,
		"quality_before":  outcome.QualityBefore,
		"quality_after":   outcome.QualityAfter,
		"checklist":       outcome.Checklist,
	})
}

func (ic *ImageController) ListConversations(c *gin.Context) {
	summaries, err := ic.store.List()
	if err != nil {
		ic.log.Error().Err(err).Msg("list conversations failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list conversations", "kind": services.KindStorage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

func (ic *ImageController) SearchConversations(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required", "kind": services.KindInvalidInput})
		return
	}

	summaries, err := ic.store.Search(query)
	if err != nil {
		ic.log.Error().Err(err).Msg("search conversations failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed", "kind": services.KindStorage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

func (ic *ImageController) GetConversation(c *gin.Context) {
	conv, err := ic.store.Load(c.Param("id"))
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found", "kind": services.KindNotFound})
		return
	}
	if err != nil {
		ic.log.Error().Err(err).Msg("load conversation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load conversation", "kind": services.KindStorage})
		return
	}
	c.JSON(http.StatusOK, conv)
}

func (ic *ImageController) DeleteConversation(c *gin.Context) {
	id := c.Param("id")
	if err := ic.store.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found", "kind": services.KindNotFound})
			return
		}
		ic.log.Error().Err(err).Msg("delete conversation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete conversation", "kind": services.KindStorage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (ic *ImageController) StoreStats(c *gin.Context) {
	stats, err := ic.store.Stats()
	if err != nil {
		ic.log.Error().Err(err).Msg("store stats failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read store stats", "kind": services.KindStorage})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// renderTurnError maps the orchestrator's typed kinds onto HTTP statuses.
func (ic *ImageController) renderTurnError(c *gin.Context, err error) {
	var terr *services.TurnError
	if !errors.As(err, &terr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "kind": services.KindTransport})
		return
	}

	status := http.StatusInternalServerError
	switch terr.Kind {
	case services.KindInvalidInput:
		status = http.StatusBadRequest
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindRateLimited:
		status = http.StatusTooManyRequests
	case services.KindPolicyRejected:
		status = http.StatusUnprocessableEntity
	case services.KindTransport:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": terr.Message, "kind": terr.Kind})
}
