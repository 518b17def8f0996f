package whisper

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"voicemail-whisper/internal/app/api"
	"voicemail-whisper/internal/app/model"
)

// RemoteTranscriber implements remote transcription using the OpenAI API.
// The hosted model has a single quality level, so it serves the accurate tier only.
type RemoteTranscriber struct {
	client   *openai.Client
	model    string
	language string
}

var _ api.Transcriber = (*RemoteTranscriber)(nil)

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, modelName, language string) *RemoteTranscriber {
	if modelName == "" {
		modelName = openai.Whisper1
	}
	return &RemoteTranscriber{client: client, model: modelName, language: language}
}

func (rt *RemoteTranscriber) Name() string {
	return "openai"
}

func (rt *RemoteTranscriber) Tiers() []model.Tier {
	return []model.Tier{model.TierAccurate}
}

// Transcribe uploads the file to the OpenAI transcription endpoint.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, audioPath string, tier model.Tier) (*api.Transcript, error) {
	if tier != model.TierAccurate {
		return nil, fmt.Errorf("openai: tier %s not offered", tier)
	}

	start := time.Now()
	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: audioPath,
		Language: rt.language,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("createTranscription failed: %w", err)
	}

	return &api.Transcript{Text: resp.Text, Seconds: time.Since(start).Seconds()}, nil
}
