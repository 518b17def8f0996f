package repository

import (
	"context"

	"voicemail-whisper/internal/app/model"
)

// ClipDAO is the durable keyed record store for clips.
//
// Reads are not synchronized with pipeline writes: a caller of Get may observe any
// status and must treat fields of stages that have not completed as absent.
type ClipDAO interface {
	Close() error

	// Create inserts a clip in StatusWaitingFast and returns its id.
	Create(ctx context.Context, audioRef string) (int64, error)

	// Update writes every non-nil field of u in a single statement.
	Update(ctx context.Context, id int64, u ClipUpdate) error

	// Get returns the clip or an error matching errors.ErrClipNotFound.
	Get(ctx context.Context, id int64) (*model.Clip, error)

	// ListByStatus returns every clip in one of statuses, oldest first.
	ListByStatus(ctx context.Context, statuses ...model.Status) ([]model.Clip, error)

	// List returns up to limit clips newest first, restricted to statuses when any are given.
	List(ctx context.Context, limit int, statuses ...model.Status) ([]model.Clip, error)

	SetValid(ctx context.Context, id int64, valid bool) error
}

// ClipUpdate is a partial update; nil fields are left untouched.
type ClipUpdate struct {
	Status *model.Status

	FastTranscript        *string
	FastTranscriptSeconds *float64

	AccurateTranscript        *string
	AccurateTranscriptSeconds *float64

	ExtractionRaw *string

	FailedStage   *model.Stage
	FailureReason *string

	IsValid *bool
}

type assignment struct {
	column string
	value  interface{}
}

// assignments lists the columns u touches in a fixed order.
func (u ClipUpdate) assignments() []assignment {
	var out []assignment
	if u.Status != nil {
		out = append(out, assignment{"status", string(*u.Status)})
	}
	if u.FastTranscript != nil {
		out = append(out, assignment{"transcription_fast", *u.FastTranscript})
	}
	if u.FastTranscriptSeconds != nil {
		out = append(out, assignment{"transcription_fast_time", *u.FastTranscriptSeconds})
	}
	if u.AccurateTranscript != nil {
		out = append(out, assignment{"transcription_accurate", *u.AccurateTranscript})
	}
	if u.AccurateTranscriptSeconds != nil {
		out = append(out, assignment{"transcription_accurate_time", *u.AccurateTranscriptSeconds})
	}
	if u.ExtractionRaw != nil {
		out = append(out, assignment{"resolution", *u.ExtractionRaw})
	}
	if u.FailedStage != nil {
		out = append(out, assignment{"failed_stage", string(*u.FailedStage)})
	}
	if u.FailureReason != nil {
		out = append(out, assignment{"failure_reason", *u.FailureReason})
	}
	if u.IsValid != nil {
		out = append(out, assignment{"is_valid", *u.IsValid})
	}
	return out
}

// IsEmpty reports whether u would not change any column.
func (u ClipUpdate) IsEmpty() bool {
	return len(u.assignments()) == 0
}
