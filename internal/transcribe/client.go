// Package transcribe wraps the external collaborators that feed the
// pipeline: the transcription service, the diarization output, the audio
// duration probe, and the grammar-correction service. Failures here degrade
// the pipeline instead of aborting it.
package transcribe

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/xiaodongyu/spanish-helper/internal/speaker"
)

// Result is everything the collaborator produced for one audio file. Words
// and Segments may be empty when the service did not return word-level
// timestamps or speaker labels.
type Result struct {
	Text     string
	Duration float64
	Words    []speaker.WordStamp
	Segments []speaker.Segment
}

// Client calls the OpenAI transcription API.
type Client struct {
	api      *openai.Client
	language string
	logger   *zap.Logger
}

// NewClient creates a transcription client for the given API key and audio
// language.
func NewClient(apiKey, language string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		api:      openai.NewClient(apiKey),
		language: language,
		logger:   logger,
	}
}

// Transcribe requests a verbose transcription with word and segment
// timestamps for the audio file at path.
func (c *Client) Transcribe(ctx context.Context, path string) (*Result, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: path,
		Language: c.language,
		Format:   openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularitySegment,
			openai.TranscriptionTimestampGranularityWord,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("transcription request for %s failed: %w", path, err)
	}

	result := &Result{
		Text:     resp.Text,
		Duration: resp.Duration,
	}
	for _, w := range resp.Words {
		result.Words = append(result.Words, speaker.WordStamp{
			Word:  w.Word,
			Start: w.Start,
			End:   w.End,
		})
	}
	for _, s := range resp.Segments {
		result.Segments = append(result.Segments, speaker.Segment{
			Start: s.Start,
			End:   s.End,
			Text:  s.Text,
		})
	}

	c.logger.Info("transcription complete",
		zap.String("path", path),
		zap.Float64("duration_sec", result.Duration),
		zap.Int("words", len(result.Words)),
		zap.Int("segments", len(result.Segments)))
	return result, nil
}
