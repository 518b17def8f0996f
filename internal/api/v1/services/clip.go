package services

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"voicemail-whisper/internal/api/errors"
	"voicemail-whisper/internal/api/v1/dto"
	"voicemail-whisper/internal/app/audio"
	apperrors "voicemail-whisper/internal/app/errors"
	"voicemail-whisper/internal/app/model"
	"voicemail-whisper/internal/app/status"
	"voicemail-whisper/internal/app/storage"
)

const defaultListLimit = 100

type clipService struct {
	submitter Submitter
	status    *status.Service
	audio     storage.AudioStore
	logger    *zap.Logger
}

// NewClipService creates a clip service over the pipeline, the status reader and
// the audio store.
func NewClipService(submitter Submitter, statusService *status.Service, audioStore storage.AudioStore, logger *zap.Logger) ClipService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &clipService{
		submitter: submitter,
		status:    statusService,
		audio:     audioStore,
		logger:    logger.Named("clips"),
	}
}

func (s *clipService) UploadClip(ctx context.Context, filename string, r io.Reader, size int64) (*dto.CreateClipResponse, error) {
	if !audio.IsSupported(filename) {
		return nil, errors.NewValidationError("Unsupported audio format", map[string]string{
			"audio": "must be one of " + strings.Join(audio.SupportedExtensions, ", "),
		})
	}

	ref, err := s.audio.Save(ctx, filename, r, size)
	if err != nil {
		s.logger.Error("failed to save upload", zap.String("filename", filename), zap.Error(err))
		return nil, errors.WrapError(err, errors.KindInternal, "Failed to store audio")
	}

	return s.submit(ctx, ref)
}

func (s *clipService) CreateClip(ctx context.Context, req *dto.CreateClipRequest) (*dto.CreateClipResponse, error) {
	exists, err := s.audio.Exists(ctx, req.Audio)
	if err != nil {
		return nil, errors.FromDomain(err, "Audio")
	}
	if !exists {
		return nil, errors.NewValidationError("Audio not found", map[string]string{
			"audio": "not found in audio store",
		})
	}
	return s.submit(ctx, req.Audio)
}

func (s *clipService) submit(ctx context.Context, ref string) (*dto.CreateClipResponse, error) {
	id, err := s.submitter.Submit(ctx, ref)
	if err != nil {
		return nil, errors.FromDomain(err, "Clip")
	}
	return &dto.CreateClipResponse{ID: id}, nil
}

func (s *clipService) GetStatus(ctx context.Context, id int64) (*status.StatusView, error) {
	view, err := s.status.Status(ctx, id)
	if err != nil {
		return nil, errors.FromDomain(err, "Clip")
	}
	return view, nil
}

func (s *clipService) GetRaw(ctx context.Context, id int64) (*model.Clip, error) {
	clip, err := s.status.Raw(ctx, id)
	if err != nil {
		return nil, errors.FromDomain(err, "Clip")
	}
	return clip, nil
}

func (s *clipService) ListClips(ctx context.Context, query dto.ListClipsQuery) (*dto.ClipListResponse, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	views, err := s.status.List(ctx, limit, query.Statuses()...)
	if err != nil {
		return nil, errors.FromDomain(err, "Clip")
	}
	return &dto.ClipListResponse{Clips: views, Total: len(views)}, nil
}

func (s *clipService) SetValidity(ctx context.Context, id int64, valid bool) (*status.StatusView, error) {
	view, err := s.status.SetValid(ctx, id, valid)
	if err != nil {
		return nil, errors.FromDomain(err, "Clip")
	}
	return view, nil
}

type audioService struct {
	audio storage.AudioStore
}

// NewAudioService serves files from the audio store.
func NewAudioService(audioStore storage.AudioStore) AudioService {
	return &audioService{audio: audioStore}
}

func (s *audioService) AudioPath(ctx context.Context, ref string) (string, error) {
	if err := storage.ValidateRef(ref); err != nil {
		return "", errors.NewNotFoundError("Audio")
	}
	path, err := s.audio.Path(ctx, ref)
	if apperrors.IsAudioNotFound(err) {
		return "", errors.NewNotFoundError("Audio")
	}
	if err != nil {
		return "", errors.FromDomain(err, "Audio")
	}
	return path, nil
}
