package models

import "errors"

// Application-wide standard errors
var (
	// Validation
	ErrEmptyPrompt = errors.New("prompt is required")

	// Moderation
	ErrModerationRejected    = errors.New("prompt rejected by safety filter")
	ErrModerationUnavailable = errors.New("moderation service unavailable")

	// Generation
	ErrGenerationFailed = errors.New("story generation failed")

	// Resource/DB
	ErrStoryNotFound  = errors.New("story not found")
	ErrPolicyNotFound = errors.New("policy not found")

	// Authentication/Authorization
	ErrUnauthorized = errors.New("unauthorized") // Authentication required or failed
	ErrForbidden    = errors.New("forbidden")    // Authenticated, but not the owner

	// Token Errors
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")

	// General
	ErrInternalServer = errors.New("internal server error")
)
