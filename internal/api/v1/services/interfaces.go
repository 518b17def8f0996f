package services

import (
	"context"
	"io"

	"voicemail-whisper/internal/api/v1/dto"
	"voicemail-whisper/internal/app/model"
	"voicemail-whisper/internal/app/status"
)

// ClipService defines the interface for clip operations
type ClipService interface {
	UploadClip(ctx context.Context, filename string, r io.Reader, size int64) (*dto.CreateClipResponse, error)
	CreateClip(ctx context.Context, req *dto.CreateClipRequest) (*dto.CreateClipResponse, error)
	GetStatus(ctx context.Context, id int64) (*status.StatusView, error)
	GetRaw(ctx context.Context, id int64) (*model.Clip, error)
	ListClips(ctx context.Context, query dto.ListClipsQuery) (*dto.ClipListResponse, error)
	SetValidity(ctx context.Context, id int64, valid bool) (*status.StatusView, error)
}

// AudioService resolves stored audio for download.
type AudioService interface {
	AudioPath(ctx context.Context, ref string) (string, error)
}

// Submitter starts the pipeline for a stored clip.
type Submitter interface {
	Submit(ctx context.Context, audioRef string) (int64, error)
}
