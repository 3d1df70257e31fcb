package narration

import (
	"context"
	"fmt"
	"io"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAISynthesizer implements Synthesizer against the OpenAI speech
// endpoint.
type OpenAISynthesizer struct {
	client  *openai.Client
	model   openai.SpeechModel
	voice   openai.SpeechVoice
	timeout time.Duration
}

// NewOpenAISynthesizer wraps an existing go-openai client.
func NewOpenAISynthesizer(client *openai.Client, model, voice string, timeout time.Duration) *OpenAISynthesizer {
	if model == "" {
		model = string(openai.TTSModel1)
	}
	if voice == "" {
		voice = string(openai.VoiceNova)
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &OpenAISynthesizer{
		client:  client,
		model:   openai.SpeechModel(model),
		voice:   openai.SpeechVoice(voice),
		timeout: timeout,
	}
}

func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          s.model,
		Input:          text,
		Voice:          s.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech response: %w", err)
	}
	return audio, nil
}
