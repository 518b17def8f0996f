package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"voicemail-whisper/internal/app/api"
	apperrors "voicemail-whisper/internal/app/errors"
	"voicemail-whisper/internal/app/extraction"
)

const defaultMaxTokens = 300

// Extractor asks an OpenAI chat model the absence questions about a transcript.
type Extractor struct {
	client    *openai.Client
	model     string
	maxTokens int
}

var _ api.Extractor = (*Extractor)(nil)

func NewExtractor(client *openai.Client, model string, maxTokens int) *Extractor {
	if model == "" {
		model = openai.GPT4oMini
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Extractor{client: client, model: model, maxTokens: maxTokens}
}

func (e *Extractor) Name() string {
	return "openai"
}

func (e *Extractor) Extract(ctx context.Context, transcript string) (*api.Extraction, error) {
	request := openai.ChatCompletionRequest{
		Model:       e.model,
		MaxTokens:   e.maxTokens,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: extraction.SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: extraction.Prompt(transcript),
			},
		},
	}

	resp, err := e.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("createChatCompletion failed: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, apperrors.ErrEmptyResponse
	}

	return &api.Extraction{
		Text:        resp.Choices[0].Message.Content,
		TotalTokens: resp.Usage.TotalTokens,
		Provider:    e.Name(),
	}, nil
}
