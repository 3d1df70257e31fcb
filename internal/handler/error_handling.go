package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"babystory-server/internal/models"
)

// moderationRejectionMessage is what a child-facing client shows when a
// prompt is turned away. Both a flagged prompt and an unreachable
// classifier get the same gentle wording; the distinction stays in the
// logs.
const moderationRejectionMessage = "Please try a happier idea!"

func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrEmptyPrompt):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Prompt is required"}
	case errors.Is(err, models.ErrModerationRejected), errors.Is(err, models.ErrModerationUnavailable):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodePromptRejected, Message: moderationRejectionMessage}
	case errors.Is(err, models.ErrGenerationFailed):
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Code: models.ErrCodeGenerationFailed, Message: "Story generation failed, please try again"}
	case errors.Is(err, models.ErrStoryNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Code: models.ErrCodeStoryNotFound, Message: "Story not found"}
	case errors.Is(err, models.ErrForbidden):
		statusCode = http.StatusForbidden
		errResp = models.ErrorResponse{Code: models.ErrCodeForbidden, Message: "You do not have access to this story"}
	case errors.Is(err, models.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeTokenExpired, Message: "Token has expired"}
	case errors.Is(err, models.ErrTokenInvalid), errors.Is(err, models.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Message: "Token is invalid or missing"}
	default:
		log.Error().Err(err).Msg("Unhandled internal error in handleServiceError")
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Code: models.ErrCodeInternal, Message: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}
