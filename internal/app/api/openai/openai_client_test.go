package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "voicemail-whisper/internal/app/errors"
)

func TestNewClient(t *testing.T) {
	_, err := NewClient("", "")
	assert.ErrorIs(t, err, apperrors.ErrMissingAPIKey)

	client, err := NewClient("sk-test", "http://localhost:8080/v1")
	require.NoError(t, err)
	assert.NotNil(t, client)
}
