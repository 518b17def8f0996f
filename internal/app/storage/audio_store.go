package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"voicemail-whisper/internal/app/audio"
	apperrors "voicemail-whisper/internal/app/errors"
)

// AudioStore keeps uploaded clips. A ref is the opaque file name Save returns.
type AudioStore interface {
	Save(ctx context.Context, originalName string, r io.Reader, size int64) (string, error)
	// Path returns a local path the transcribers can read.
	Path(ctx context.Context, ref string) (string, error)
	Exists(ctx context.Context, ref string) (bool, error)
}

// NewRef generates a unique ref keeping the upload's extension.
func NewRef(originalName string) (string, error) {
	if !audio.IsSupported(originalName) {
		return "", apperrors.InvalidField("audio", fmt.Sprintf("unsupported format %q", filepath.Ext(originalName)))
	}
	return uuid.New().String() + strings.ToLower(filepath.Ext(originalName)), nil
}

// ValidateRef rejects refs that could escape the store's directory.
func ValidateRef(ref string) error {
	if ref == "" || ref != filepath.Base(ref) || strings.HasPrefix(ref, ".") || strings.ContainsAny(ref, `/\`) {
		return apperrors.InvalidField("audio", fmt.Sprintf("bad reference %q", ref))
	}
	return nil
}

// LocalStore keeps audio files in one directory on disk.
type LocalStore struct {
	dir string
}

var _ AudioStore = (*LocalStore)(nil)

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Save(_ context.Context, originalName string, r io.Reader, _ int64) (string, error) {
	ref, err := NewRef(originalName)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(filepath.Join(s.dir, ref), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("create audio file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close audio file: %w", err)
	}
	return ref, nil
}

func (s *LocalStore) Path(_ context.Context, ref string) (string, error) {
	if err := ValidateRef(ref); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, ref)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", ref, apperrors.ErrAudioNotFound)
		}
		return "", err
	}
	return path, nil
}

func (s *LocalStore) Exists(ctx context.Context, ref string) (bool, error) {
	_, err := s.Path(ctx, ref)
	if err == nil {
		return true, nil
	}
	if apperrors.IsAudioNotFound(err) {
		return false, nil
	}
	return false, err
}
