package migrate

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"voicemail-whisper/internal/app/model"
)

const defaultBatchSize = 1000

// Source is the backend clips are read from.
type Source interface {
	ListAfter(ctx context.Context, afterID int64, limit int) ([]model.Clip, error)
}

// Destination is the backend clips are copied into.
type Destination interface {
	Import(ctx context.Context, c model.Clip) error
	SyncSequence(ctx context.Context) error
}

// Progress is told how many clips each batch holds and when each one is handled.
type Progress interface {
	Found(n int)
	Advance()
}

type nopProgress struct{}

func (nopProgress) Found(int) {}
func (nopProgress) Advance()  {}

// Copier copies clips between stores in id order, remembering the last copied
// id in a cursor file so an interrupted run resumes where it stopped.
type Copier struct {
	src        Source
	dst        Destination
	cursorPath string
	batchSize  int
	progress   Progress
	logger     *zap.Logger
}

func NewCopier(src Source, dst Destination, cursorPath string, logger *zap.Logger) *Copier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Copier{
		src:        src,
		dst:        dst,
		cursorPath: cursorPath,
		batchSize:  defaultBatchSize,
		progress:   nopProgress{},
		logger:     logger,
	}
}

// WithProgress reports copy progress to p.
func (c *Copier) WithProgress(p Progress) *Copier {
	if p != nil {
		c.progress = p
	}
	return c
}

// Run copies every clip after the saved cursor and returns how many were copied.
func (c *Copier) Run(ctx context.Context) (int, error) {
	lastID := c.lastID()
	copied := 0

	for {
		clips, err := c.src.ListAfter(ctx, lastID, c.batchSize)
		if err != nil {
			return copied, fmt.Errorf("read clips after %d: %w", lastID, err)
		}
		if len(clips) == 0 {
			break
		}
		c.progress.Found(len(clips))

		for _, clip := range clips {
			if strings.TrimSpace(clip.AudioRef) == "" {
				c.logger.Warn("skipping clip without audio", zap.Int64("clip_id", clip.ID))
				lastID = clip.ID
				c.progress.Advance()
				continue
			}
			if err := c.dst.Import(ctx, clip); err != nil {
				return copied, err
			}
			lastID = clip.ID
			copied++
			c.progress.Advance()
		}

		if err := c.saveLastID(lastID); err != nil {
			return copied, fmt.Errorf("save cursor: %w", err)
		}
		c.logger.Info("copied batch", zap.Int64("last_id", lastID), zap.Int("total", copied))
	}

	if err := c.dst.SyncSequence(ctx); err != nil {
		return copied, err
	}
	return copied, nil
}

func (c *Copier) lastID() int64 {
	data, err := os.ReadFile(c.cursorPath)
	if err != nil {
		return 0
	}

	lastID, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0
	}
	return lastID
}

func (c *Copier) saveLastID(lastID int64) error {
	return os.WriteFile(c.cursorPath, []byte(strconv.FormatInt(lastID, 10)), 0644)
}
