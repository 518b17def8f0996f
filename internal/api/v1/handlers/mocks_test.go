package handlers_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"voicemail-whisper/internal/api/v1/dto"
	"voicemail-whisper/internal/app/model"
	"voicemail-whisper/internal/app/status"
)

type MockClipService struct {
	mock.Mock
}

func (m *MockClipService) UploadClip(ctx context.Context, filename string, r io.Reader, size int64) (*dto.CreateClipResponse, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(ctx, filename, string(data))
	if resp := args.Get(0); resp != nil {
		return resp.(*dto.CreateClipResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClipService) CreateClip(ctx context.Context, req *dto.CreateClipRequest) (*dto.CreateClipResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*dto.CreateClipResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClipService) GetStatus(ctx context.Context, id int64) (*status.StatusView, error) {
	args := m.Called(ctx, id)
	if resp := args.Get(0); resp != nil {
		return resp.(*status.StatusView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClipService) GetRaw(ctx context.Context, id int64) (*model.Clip, error) {
	args := m.Called(ctx, id)
	if resp := args.Get(0); resp != nil {
		return resp.(*model.Clip), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClipService) ListClips(ctx context.Context, query dto.ListClipsQuery) (*dto.ClipListResponse, error) {
	args := m.Called(ctx, query)
	if resp := args.Get(0); resp != nil {
		return resp.(*dto.ClipListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClipService) SetValidity(ctx context.Context, id int64, valid bool) (*status.StatusView, error) {
	args := m.Called(ctx, id, valid)
	if resp := args.Get(0); resp != nil {
		return resp.(*status.StatusView), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAudioService struct {
	mock.Mock
}

func (m *MockAudioService) AudioPath(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}
