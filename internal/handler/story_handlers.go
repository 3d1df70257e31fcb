// Package handler exposes the story pipeline over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"babystory-server/internal/models"
)

// StoryService is the orchestrator the handlers delegate to.
type StoryService interface {
	Generate(ctx context.Context, userID uuid.UUID, prompt string) (*models.Story, error)
	GetStory(ctx context.Context, userID, storyID uuid.UUID) (*models.Story, error)
	ListStories(ctx context.Context, userID uuid.UUID) ([]models.Story, error)
	ApproveStory(ctx context.Context, userID, storyID uuid.UUID) (*models.Story, error)
	DeleteStory(ctx context.Context, userID, storyID uuid.UUID) error
}

// StoryHandler serves the /api/story routes.
type StoryHandler struct {
	service StoryService
}

// NewStoryHandler creates the handler.
func NewStoryHandler(service StoryService) *StoryHandler {
	return &StoryHandler{service: service}
}

// RegisterRoutes attaches the story routes to an authenticated group.
func (h *StoryHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/generate", h.GenerateStory)
	group.GET("", h.ListStories)
	group.GET("/:id", h.GetStory)
	group.PUT("/:id/approve", h.ApproveStory)
	group.DELETE("/:id", h.DeleteStory)
}

// GenerateStoryRequest is the body of POST /api/story/generate.
type GenerateStoryRequest struct {
	Prompt string `json:"prompt"`
}

func (h *StoryHandler) GenerateStory(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		handleServiceError(c, models.ErrUnauthorized)
		return
	}

	var req GenerateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, models.ErrEmptyPrompt)
		return
	}

	story, err := h.service.Generate(c.Request.Context(), userID, req.Prompt)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, story)
}

func (h *StoryHandler) ListStories(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		handleServiceError(c, models.ErrUnauthorized)
		return
	}

	stories, err := h.service.ListStories(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stories": stories})
}

func (h *StoryHandler) GetStory(c *gin.Context) {
	userID, storyID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	story, err := h.service.GetStory(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, story)
}

func (h *StoryHandler) ApproveStory(c *gin.Context) {
	userID, storyID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	story, err := h.service.ApproveStory(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, story)
}

func (h *StoryHandler) DeleteStory(c *gin.Context) {
	userID, storyID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	if err := h.service.DeleteStory(c.Request.Context(), userID, storyID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// requestIDs extracts the caller identity and the :id path parameter.
func (h *StoryHandler) requestIDs(c *gin.Context) (userID, storyID uuid.UUID, ok bool) {
	userID, found := userIDFromContext(c)
	if !found {
		handleServiceError(c, models.ErrUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Debug().Str("id", c.Param("id")).Msg("Invalid story id in path")
		handleServiceError(c, models.ErrStoryNotFound)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, storyID, true
}
