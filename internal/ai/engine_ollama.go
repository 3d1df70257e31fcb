package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaEngine runs completions against a local Ollama server through its
// native API.
type OllamaEngine struct {
	client *api.Client
	model  string
}

// NewOllamaEngine builds an engine for the given base URL. Ollama's client
// wants the URL without the /v1 suffix an OpenAI-compatible config carries.
func NewOllamaEngine(baseURL, model string) (*OllamaEngine, error) {
	baseURL = strings.TrimSuffix(strings.TrimSuffix(baseURL, "/"), "/v1")
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base URL %q: %w", baseURL, err)
	}
	return &OllamaEngine{
		client: api.NewClient(parsed, http.DefaultClient),
		model:  model,
	}, nil
}

func (e *OllamaEngine) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model: e.model,
		Messages: []api.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Stream: &stream,
		Options: map[string]interface{}{
			"temperature": 0.7,
			"top_p":       0.95,
		},
	}

	var out strings.Builder
	err := e.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		out.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}
	return out.String(), nil
}
