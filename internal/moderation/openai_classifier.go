package moderation

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClassifier implements Classifier against the OpenAI moderations
// endpoint.
type OpenAIClassifier struct {
	client  *openai.Client
	timeout time.Duration
}

// NewOpenAIClassifier wraps an existing go-openai client.
func NewOpenAIClassifier(client *openai.Client, timeout time.Duration) *OpenAIClassifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OpenAIClassifier{client: client, timeout: timeout}
}

// Classify submits the text for classification. Errors (network, rate limit,
// timeout) are returned as-is so the filter can fail closed.
func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Moderations(ctx, openai.ModerationRequest{
		Model: openai.ModerationOmniLatest,
		Input: text,
	})
	if err != nil {
		return false, fmt.Errorf("moderation request failed: %w", err)
	}
	if len(resp.Results) == 0 {
		return false, fmt.Errorf("moderation response contained no results")
	}
	return resp.Results[0].Flagged, nil
}
