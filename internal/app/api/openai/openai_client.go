package openai

import (
	"github.com/sashabaranov/go-openai"

	apperrors "voicemail-whisper/internal/app/errors"
)

// NewClient returns a go-openai client for apiKey. baseURL overrides the API endpoint
// when non-empty, e.g. for a compatible proxy.
func NewClient(apiKey, baseURL string) (*openai.Client, error) {
	if apiKey == "" {
		return nil, apperrors.ErrMissingAPIKey
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config), nil
}
