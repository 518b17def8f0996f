package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"voicemail-whisper/internal/app/api"
	apperrors "voicemail-whisper/internal/app/errors"
	"voicemail-whisper/internal/app/extraction"
)

const defaultModel = "gemini-2.0-flash"

// Extractor asks a Gemini model the absence questions about a transcript.
type Extractor struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

var _ api.Extractor = (*Extractor)(nil)

// Options configures NewExtractor. BaseURL is only set in tests.
type Options struct {
	APIKey    string
	Model     string
	MaxTokens int
	BaseURL   string
}

func NewExtractor(ctx context.Context, opts Options) (*Extractor, error) {
	if opts.APIKey == "" {
		return nil, apperrors.ErrMissingAPIKey
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 300
	}

	config := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Extractor{client: client, model: opts.Model, maxTokens: int32(opts.MaxTokens)}, nil
}

func (e *Extractor) Name() string {
	return "gemini"
}

func (e *Extractor) Extract(ctx context.Context, transcript string) (*api.Extraction, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(extraction.SystemPrompt, genai.RoleUser),
		MaxOutputTokens:   e.maxTokens,
		Temperature:       genai.Ptr[float32](0),
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(extraction.Prompt(transcript)), config)
	if err != nil {
		return nil, fmt.Errorf("generateContent failed: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.ErrEmptyResponse
	}

	tokens := 0
	if resp.UsageMetadata != nil {
		tokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return &api.Extraction{Text: text, TotalTokens: tokens, Provider: e.Name()}, nil
}
