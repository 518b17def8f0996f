package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "voicemail-whisper/internal/app/errors"
	"voicemail-whisper/internal/app/model"
	"voicemail-whisper/internal/app/repository"
)

// TestSQLiteStore_Interface verifies the sqlite store implements ClipDAO
func TestSQLiteStore_Interface(t *testing.T) {
	var _ repository.ClipDAO = (*repository.SQLClipStore)(nil)
}

func openTestStore(t *testing.T) *repository.SQLClipStore {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "clips.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_CreatesSchemaIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clips.db")

	first, err := Open(context.Background(), path)
	require.NoError(t, err)
	id, err := first.Create(context.Background(), "kept.mp3")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer second.Close()

	clip, err := second.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "kept.mp3", clip.AudioRef)
}

func TestSQLiteStore_CreateAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, "voicemail-1.mp3")
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	clip, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, clip.ID)
	assert.Equal(t, "voicemail-1.mp3", clip.AudioRef)
	assert.Equal(t, model.StatusWaitingFast, clip.Status)
	assert.Nil(t, clip.FastTranscript)
	assert.Nil(t, clip.AccurateTranscript)
	assert.Nil(t, clip.ExtractionRaw)
	assert.Nil(t, clip.FailedStage)
	assert.Nil(t, clip.IsValid)
	assert.False(t, clip.CreatedAt.IsZero())

	other, err := store.Create(ctx, "voicemail-2.mp3")
	require.NoError(t, err)
	assert.NotEqual(t, id, other, "ids are never reused")
}

func TestSQLiteStore_CreateRequiresAudio(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Create(context.Background(), "  ")
	assert.Error(t, err)
}

func TestSQLiteStore_UpdateIsPartial(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, "clip.wav")
	require.NoError(t, err)

	status := model.StatusWaitingAccurate
	text := "my son is unwell"
	seconds := 1.5
	require.NoError(t, store.Update(ctx, id, repository.ClipUpdate{
		Status:                &status,
		FastTranscript:        &text,
		FastTranscriptSeconds: &seconds,
	}))

	clip, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusWaitingAccurate, clip.Status)
	require.NotNil(t, clip.FastTranscript)
	assert.Equal(t, text, *clip.FastTranscript)
	assert.InDelta(t, 1.5, *clip.FastTranscriptSeconds, 1e-9)
	assert.Nil(t, clip.AccurateTranscript)

	failed := model.StatusFailed
	stage := model.StageAccurateTranscription
	reason := "timed out"
	require.NoError(t, store.Update(ctx, id, repository.ClipUpdate{
		Status:        &failed,
		FailedStage:   &stage,
		FailureReason: &reason,
	}))

	clip, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, clip.Status)
	assert.Equal(t, stage, *clip.FailedStage)
	assert.Equal(t, reason, *clip.FailureReason)
	assert.Equal(t, text, *clip.FastTranscript, "earlier fields survive later updates")
}

func TestSQLiteStore_NotFound(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, 999)
	assert.True(t, apperrors.IsNotFound(err))
	assert.False(t, apperrors.IsStoreError(err))

	status := model.StatusDone
	err = store.Update(ctx, 999, repository.ClipUpdate{Status: &status})
	assert.True(t, apperrors.IsStoreError(err))
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSQLiteStore_EmptyUpdate(t *testing.T) {
	store := openTestStore(t)
	id, err := store.Create(context.Background(), "clip.wav")
	require.NoError(t, err)

	err = store.Update(context.Background(), id, repository.ClipUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrNothingToWrite)
}

func TestSQLiteStore_ListByStatusAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ids := make([]int64, 3)
	for i := range ids {
		id, err := store.Create(ctx, "clip.wav")
		require.NoError(t, err)
		ids[i] = id
	}
	done := model.StatusDone
	require.NoError(t, store.Update(ctx, ids[1], repository.ClipUpdate{Status: &done}))

	pending, err := store.ListByStatus(ctx, model.StatusWaitingFast, model.StatusWaitingAccurate)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, ids[0], pending[0].ID)
	assert.Equal(t, ids[2], pending[1].ID)

	none, err := store.ListByStatus(ctx)
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, ids[2], all[0].ID, "newest first")
}

func TestSQLiteStore_SetValid(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, "clip.wav")
	require.NoError(t, err)
	require.NoError(t, store.SetValid(ctx, id, true))

	clip, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, clip.IsValid)
	assert.True(t, *clip.IsValid)
	assert.Equal(t, model.StatusWaitingFast, clip.Status)
}
