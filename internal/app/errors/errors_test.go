package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicemail-whisper/internal/app/model"
)

func TestStoreError_WrapsNotFound(t *testing.T) {
	err := NewStoreError("update", 42, ErrClipNotFound)

	assert.True(t, IsStoreError(err))
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "store update clip 42: clip not found", err.Error())

	assert.Nil(t, NewStoreError("update", 1, nil))
}

func TestAdapterError(t *testing.T) {
	cause := stderrors.New("exit status 1")
	err := fmt.Errorf("stage: %w", &AdapterError{
		Stage:    model.StageAccurateTranscription,
		Provider: "whisper_cpp",
		Err:      cause,
	})

	ae, ok := AsAdapterError(err)
	require.True(t, ok)
	assert.Equal(t, model.StageAccurateTranscription, ae.Stage)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, ae.Error(), "failed")

	ae.Timeout = true
	assert.Contains(t, ae.Error(), "timed out")
}

func TestError_IsByMessage(t *testing.T) {
	wrapped := fmt.Errorf("get: %w", New("clip not found"))
	assert.True(t, stderrors.Is(wrapped, ErrClipNotFound))
	assert.False(t, stderrors.Is(wrapped, ErrAudioNotFound))
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, "audio is invalid: too long", InvalidField("audio", "too long").Error())
	assert.Equal(t, "child is required", RequiredField("child").Error())
}
