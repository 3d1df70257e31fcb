package models

// ErrorResponse is the JSON error body returned by the API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes returned in ErrorResponse.Code.
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodePromptRejected   = "PROMPT_REJECTED"
	ErrCodeTokenInvalid     = "TOKEN_INVALID"
	ErrCodeTokenExpired     = "TOKEN_EXPIRED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeStoryNotFound    = "STORY_NOT_FOUND"
	ErrCodeGenerationFailed = "GENERATION_FAILED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)
