package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	apperrors "voicemail-whisper/internal/app/errors"
)

// MinioConfig locates the bucket clips are kept in.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Prefix    string
	// CacheDir holds local copies fetched for transcription.
	CacheDir string
}

// MinioStore keeps audio in an S3-compatible bucket and downloads a clip into
// CacheDir the first time a local path is needed.
type MinioStore struct {
	client   *minio.Client
	bucket   string
	prefix   string
	cacheDir string
}

var _ AudioStore = (*MinioStore)(nil)

// NewMinioStore connects and creates the bucket when missing.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "vmw-audio-cache")
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	return &MinioStore{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix, cacheDir: cacheDir}, nil
}

func (s *MinioStore) key(ref string) string {
	return s.prefix + ref
}

func (s *MinioStore) Save(ctx context.Context, originalName string, r io.Reader, size int64) (string, error) {
	ref, err := NewRef(originalName)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.key(ref), r, size, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
		UserMetadata: map[string]string{
			"original-name": filepath.Base(originalName),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to MinIO: %w", err)
	}
	return ref, nil
}

func (s *MinioStore) Path(ctx context.Context, ref string) (string, error) {
	if err := ValidateRef(ref); err != nil {
		return "", err
	}

	local := filepath.Join(s.cacheDir, ref)
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	if err := s.client.FGetObject(ctx, s.bucket, s.key(ref), local, minio.GetObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return "", fmt.Errorf("%s: %w", ref, apperrors.ErrAudioNotFound)
		}
		return "", fmt.Errorf("failed to download %s from MinIO: %w", ref, err)
	}
	return local, nil
}

func (s *MinioStore) Exists(ctx context.Context, ref string) (bool, error) {
	if err := ValidateRef(ref); err != nil {
		return false, err
	}
	_, err := s.client.StatObject(ctx, s.bucket, s.key(ref), minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if isNoSuchKey(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", ref, err)
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
