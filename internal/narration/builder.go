// Package narration turns finished story text into a durable audio asset.
// Narration is an enhancement: every failure here is reported to the caller
// as "no audio", never as a request failure.
package narration

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Synthesizer converts text to audio bytes via an external TTS engine.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Uploader moves a finished artifact into durable object storage and
// returns its stable URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// Builder synthesizes narration, stages it in a uniquely named local temp
// file and uploads it. The temp file is removed on every exit path.
type Builder struct {
	synth    Synthesizer
	uploader Uploader
	tempDir  string // "" means the OS default
	logger   zerolog.Logger
}

// NewBuilder wires a narration builder.
func NewBuilder(synth Synthesizer, uploader Uploader, tempDir string, logger zerolog.Logger) *Builder {
	return &Builder{
		synth:    synth,
		uploader: uploader,
		tempDir:  tempDir,
		logger:   logger.With().Str("component", "narration").Logger(),
	}
}

// Build synthesizes and uploads narration for the story text, returning the
// durable URL. The local intermediate artifact never outlives the call.
func (b *Builder) Build(ctx context.Context, storyText string) (string, error) {
	audio, err := b.synth.Synthesize(ctx, storyText)
	if err != nil {
		return "", fmt.Errorf("speech synthesis failed: %w", err)
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("speech synthesis returned no audio")
	}

	tmp, err := os.CreateTemp(b.tempDir, "narration-*.mp3")
	if err != nil {
		return "", fmt.Errorf("failed to create temp audio file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			b.logger.Warn().Err(err).Str("path", tmpPath).Msg("failed to remove temp audio file")
		}
	}()

	if _, err := tmp.Write(audio); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write temp audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp audio file: %w", err)
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		return "", fmt.Errorf("failed to reopen temp audio file: %w", err)
	}
	defer f.Close()

	key := uuid.New().String() + filepath.Ext(tmpPath)
	url, err := b.uploader.Upload(ctx, key, "audio/mpeg", f)
	if err != nil {
		return "", fmt.Errorf("audio upload failed: %w", err)
	}

	b.logger.Info().Str("key", key).Int("bytes", len(audio)).Msg("narration uploaded")
	return url, nil
}
