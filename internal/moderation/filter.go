// Package moderation implements the two-stage content-safety gate every
// prompt must pass before generation is allowed to spend anything.
package moderation

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"babystory-server/internal/models"
)

// DefaultDenylist is the built-in word set rejected by the local stage.
// Matching is a case-insensitive substring check, no stemming.
var DefaultDenylist = []string{"scary", "fight", "hurt", "kill", "violence"}

// Classifier is the remote moderation service. Implementations must treat
// their own failures as flagged, never as a pass.
type Classifier interface {
	Classify(ctx context.Context, text string) (flagged bool, err error)
}

// Filter gates prompts through the local denylist and, when a classifier is
// configured, the remote stage. The denylist always runs first and is never
// bypassed, even if the remote stage is down.
type Filter struct {
	denylist   []string
	classifier Classifier // nil disables the remote stage
	logger     zerolog.Logger
}

// NewFilter builds a filter. A nil or empty denylist falls back to
// DefaultDenylist; a nil classifier disables stage 2.
func NewFilter(denylist []string, classifier Classifier, logger zerolog.Logger) *Filter {
	if len(denylist) == 0 {
		denylist = DefaultDenylist
	}
	lowered := make([]string, len(denylist))
	for i, w := range denylist {
		lowered[i] = strings.ToLower(w)
	}
	return &Filter{
		denylist:   lowered,
		classifier: classifier,
		logger:     logger.With().Str("component", "moderation").Logger(),
	}
}

// Check validates and moderates a prompt. It returns nil when the prompt may
// proceed to generation, models.ErrEmptyPrompt for a missing prompt,
// models.ErrModerationRejected for flagged content and
// models.ErrModerationUnavailable when the remote stage cannot answer
// (fail closed).
func (f *Filter) Check(ctx context.Context, prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return models.ErrEmptyPrompt
	}

	lowered := strings.ToLower(prompt)
	for _, word := range f.denylist {
		if strings.Contains(lowered, word) {
			f.logger.Info().Str("word", word).Msg("prompt rejected by denylist")
			return fmt.Errorf("%w: denylisted term", models.ErrModerationRejected)
		}
	}

	if f.classifier == nil {
		return nil
	}

	flagged, err := f.classifier.Classify(ctx, prompt)
	if err != nil {
		// An unreachable classifier must not let content through.
		f.logger.Error().Err(err).Msg("remote moderation call failed, failing closed")
		return fmt.Errorf("%w: %v", models.ErrModerationUnavailable, err)
	}
	if flagged {
		f.logger.Info().Msg("prompt flagged by remote classifier")
		return fmt.Errorf("%w: flagged by classifier", models.ErrModerationRejected)
	}

	return nil
}
