package status

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	apperrors "voicemail-whisper/internal/app/errors"
	"voicemail-whisper/internal/app/model"
	"voicemail-whisper/internal/app/repository"
)

// Service answers status queries. It only reads the store.
type Service struct {
	store     repository.ClipDAO
	projector Projector
	logger    *zap.Logger
}

func NewService(store repository.ClipDAO, projector Projector, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, projector: projector, logger: logger.Named("status")}
}

// Status returns the projected view of a clip.
func (s *Service) Status(ctx context.Context, id int64) (*StatusView, error) {
	clip, err := s.Raw(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.projector.Project(clip)
	return &view, nil
}

// Raw returns the stored record unmodified.
func (s *Service) Raw(ctx context.Context, id int64) (*model.Clip, error) {
	clip, err := s.store.Get(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.logger.Debug("clip not found", zap.Int64("clip_id", id))
		}
		return nil, err
	}
	return clip, nil
}

// List returns views of the newest clips, optionally filtered by status.
func (s *Service) List(ctx context.Context, limit int, statuses ...model.Status) ([]StatusView, error) {
	clips, err := s.store.List(ctx, limit, statuses...)
	if err != nil {
		return nil, err
	}

	return lo.Map(clips, func(c model.Clip, _ int) StatusView {
		return s.projector.Project(&c)
	}), nil
}

// SetValid records a reviewer's verdict on the extraction.
func (s *Service) SetValid(ctx context.Context, id int64, valid bool) (*StatusView, error) {
	if err := s.store.SetValid(ctx, id, valid); err != nil {
		return nil, err
	}
	s.logger.Info("clip reviewed", zap.Int64("clip_id", id), zap.Bool("is_valid", valid))
	return s.Status(ctx, id)
}
