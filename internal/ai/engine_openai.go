package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEngine runs completions against any OpenAI-compatible endpoint
// (OpenAI itself, OpenRouter, vLLM and friends).
type OpenAIEngine struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIEngine wraps an existing go-openai client.
func NewOpenAIEngine(client *openai.Client, model string, maxTokens int) *OpenAIEngine {
	return &OpenAIEngine{client: client, model: model, maxTokens: maxTokens}
}

// NewOpenAIClient builds the shared go-openai client for a base URL. The
// same client also serves the moderation and speech endpoints.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

func (e *OpenAIEngine) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   e.maxTokens,
		TopP:        0.95,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no candidates in response")
	}
	return resp.Choices[0].Message.Content, nil
}
