// Package ai talks to the external text-generation service: one call for
// the story itself, one for the derived title/summary.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"babystory-server/internal/models"
)

// TextGenerator is a single-shot completion engine. Implementations return
// the first candidate's text; an empty response is an error.
type TextGenerator interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

const (
	storySystemPrompt = "You are a storyteller for young children. Every story you write is gentle, " +
		"positive and age-appropriate. Follow the user's length instruction strictly."

	summarySystemPrompt = "You are an assistant that titles children's stories. Reply with exactly two " +
		"lines: the first line is a short title, the second line is a one-sentence summary."
)

// Client wraps an engine with the pipeline's two operations and their
// timeouts.
type Client struct {
	engine         TextGenerator
	timeout        time.Duration
	summaryTimeout time.Duration
	logger         zerolog.Logger
}

// NewClient builds the generation client.
func NewClient(engine TextGenerator, timeout, summaryTimeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	if summaryTimeout <= 0 {
		summaryTimeout = 30 * time.Second
	}
	return &Client{
		engine:         engine,
		timeout:        timeout,
		summaryTimeout: summaryTimeout,
		logger:         logger.With().Str("component", "ai").Logger(),
	}
}

// BuildStoryPrompt frames the untrusted user prompt for a young audience
// with an advisory character ceiling. The ceiling is requested, not
// enforced: output is never truncated.
func BuildStoryPrompt(prompt string, childAge, characterBudget int) string {
	return fmt.Sprintf(
		"Write a fun, safe story for a %d-year-old about %s. Keep it happy, appropriate, and under %d characters.",
		childAge, prompt, characterBudget,
	)
}

// GenerateStory performs the single generation call. Any failure — service
// unreachable, rate limited, empty response — surfaces as
// models.ErrGenerationFailed. There is no retry here; retries are an
// orchestrator-level decision and currently none is taken.
func (c *Client) GenerateStory(ctx context.Context, prompt string, pol models.EffectivePolicy) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	userPrompt := BuildStoryPrompt(prompt, pol.ChildAge, pol.CharacterBudget)
	observePromptTokens("story", userPrompt)

	start := time.Now()
	text, err := c.engine.Complete(ctx, storySystemPrompt, userPrompt)
	duration := time.Since(start)

	if err != nil {
		aiRequestsTotal.WithLabelValues("story", "error").Inc()
		c.logger.Error().Err(err).Dur("duration", duration).Msg("story generation failed")
		return "", fmt.Errorf("%w: %v", models.ErrGenerationFailed, err)
	}
	if strings.TrimSpace(text) == "" {
		aiRequestsTotal.WithLabelValues("story", "error_empty_response").Inc()
		return "", fmt.Errorf("%w: empty response", models.ErrGenerationFailed)
	}

	aiRequestsTotal.WithLabelValues("story", "success").Inc()
	aiRequestDuration.WithLabelValues("story").Observe(duration.Seconds())
	observeCompletionTokens("story", text)
	c.logger.Info().Dur("duration", duration).Int("chars", len(text)).Msg("story generated")
	return text, nil
}

// Summarize derives a title and one-sentence summary from the story text.
// The model's output format is not contractual, so the response is parsed
// defensively; see ParseTitleSummary. Errors are returned so the caller can
// degrade to placeholder values — this stage must never abort a request.
func (c *Client) Summarize(ctx context.Context, storyText string) (title, summary string, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.summaryTimeout)
	defer cancel()

	userPrompt := "Give a short title and a one-sentence summary for this story:\n\n" + storyText

	start := time.Now()
	text, err := c.engine.Complete(ctx, summarySystemPrompt, userPrompt)
	if err != nil {
		aiRequestsTotal.WithLabelValues("summary", "error").Inc()
		return "", "", fmt.Errorf("summary generation failed: %w", err)
	}

	aiRequestsTotal.WithLabelValues("summary", "success").Inc()
	aiRequestDuration.WithLabelValues("summary").Observe(time.Since(start).Seconds())

	title, summary = ParseTitleSummary(text)
	return title, summary, nil
}
