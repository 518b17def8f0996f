package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicemail-whisper/internal/api/errors"
	"voicemail-whisper/internal/api/v1/dto"
	apperrors "voicemail-whisper/internal/app/errors"
	"voicemail-whisper/internal/app/model"
	"voicemail-whisper/internal/app/repository"
	"voicemail-whisper/internal/app/status"
	"voicemail-whisper/internal/app/storage"
	"voicemail-whisper/internal/app/testutil"
)

// storeSubmitter creates the clip without running the pipeline.
type storeSubmitter struct {
	store repository.ClipDAO
	err   error
}

func (s *storeSubmitter) Submit(ctx context.Context, audioRef string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.store.Create(ctx, audioRef)
}

type fixture struct {
	service   ClipService
	store     *repository.SQLClipStore
	audio     *storage.LocalStore
	submitter *storeSubmitter
}

func newFixture(t *testing.T) fixture {
	store := testutil.SetupTestStore(t)
	audioStore, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	submitter := &storeSubmitter{store: store}
	statusService := status.NewService(store, status.NewProjector(0), nil)
	return fixture{
		service:   NewClipService(submitter, statusService, audioStore, nil),
		store:     store,
		audio:     audioStore,
		submitter: submitter,
	}
}

func apiKind(t *testing.T, err error) errors.ErrorKind {
	t.Helper()
	apiErr, ok := err.(*errors.APIError)
	require.True(t, ok, "expected *errors.APIError, got %T", err)
	return apiErr.Kind
}

func TestClipService_UploadAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.service.UploadClip(ctx, "message.m4a", strings.NewReader("audio"), 5)
	require.NoError(t, err)
	assert.Greater(t, resp.ID, int64(0))

	view, err := f.service.GetStatus(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusWaitingFast, view.Status)
	assert.Nil(t, view.Transcriptions.Fast.Data)
	assert.True(t, strings.HasPrefix(view.AudioFile, status.DefaultAudioPrefix))

	raw, err := f.service.GetRaw(ctx, resp.ID)
	require.NoError(t, err)
	ok, err := f.audio.Exists(ctx, raw.AudioRef)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClipService_UploadRejectsFormat(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.UploadClip(context.Background(), "notes.pdf", strings.NewReader("x"), 1)
	assert.Equal(t, errors.KindValidation, apiKind(t, err))
}

func TestClipService_CreateClip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ref, err := f.audio.Save(ctx, "clip.wav", strings.NewReader("RIFF"), 4)
	require.NoError(t, err)

	resp, err := f.service.CreateClip(ctx, &dto.CreateClipRequest{Audio: ref})
	require.NoError(t, err)
	assert.Greater(t, resp.ID, int64(0))

	_, err = f.service.CreateClip(ctx, &dto.CreateClipRequest{Audio: "missing.wav"})
	assert.Equal(t, errors.KindValidation, apiKind(t, err))
}

func TestClipService_ErrorMapping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.GetStatus(ctx, 999)
	assert.Equal(t, errors.KindNotFound, apiKind(t, err))

	_, err = f.service.GetRaw(ctx, 999)
	assert.Equal(t, errors.KindNotFound, apiKind(t, err))

	_, err = f.service.SetValidity(ctx, 999, true)
	assert.Equal(t, errors.KindNotFound, apiKind(t, err))

	f.submitter.err = apperrors.NewStoreError("create", 0, fmt.Errorf("database is locked"))
	_, err = f.service.UploadClip(ctx, "clip.wav", strings.NewReader("RIFF"), 4)
	assert.Equal(t, errors.KindServiceUnavailable, apiKind(t, err))
}

func TestClipService_ListAndValidity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.store.Create(ctx, "a.wav")
	require.NoError(t, err)
	_, err = f.store.Create(ctx, "b.wav")
	require.NoError(t, err)
	done := model.StatusDone
	require.NoError(t, f.store.Update(ctx, first, repository.ClipUpdate{Status: &done}))

	all, err := f.service.ListClips(ctx, dto.ListClipsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	finished, err := f.service.ListClips(ctx, dto.ListClipsQuery{Status: "done"})
	require.NoError(t, err)
	require.Len(t, finished.Clips, 1)
	assert.Equal(t, first, finished.Clips[0].ID)

	view, err := f.service.SetValidity(ctx, first, false)
	require.NoError(t, err)
	require.NotNil(t, view.IsValid)
	assert.False(t, *view.IsValid)
}

func TestAudioService_AudioPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewAudioService(f.audio)

	ref, err := f.audio.Save(ctx, "clip.mp3", strings.NewReader("ID3"), 3)
	require.NoError(t, err)

	path, err := svc.AudioPath(ctx, ref)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ref))

	_, err = svc.AudioPath(ctx, "missing.mp3")
	assert.Equal(t, errors.KindNotFound, apiKind(t, err))

	_, err = svc.AudioPath(ctx, "../secret.mp3")
	assert.Equal(t, errors.KindNotFound, apiKind(t, err))
}
