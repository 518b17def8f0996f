package model

import (
	"time"
)

// Status is the persisted pipeline state of a clip.
type Status string

const (
	StatusWaitingFast       Status = "waiting_fast"
	StatusWaitingAccurate   Status = "waiting_accurate"
	StatusWaitingExtraction Status = "waiting_extraction"
	StatusDone              Status = "done"
	StatusFailed            Status = "failed"
)

// Stage names the unit of work performed while a clip sits in a waiting status.
type Stage string

const (
	StageFastTranscription     Stage = "fast_transcription"
	StageAccurateTranscription Stage = "accurate_transcription"
	StageExtraction            Stage = "extraction"
)

// Tier is the transcription quality tier requested from a transcriber.
type Tier string

const (
	TierFast     Tier = "fast"
	TierAccurate Tier = "accurate"
)

// PendingStatuses are the statuses a clip can be resumed from.
var PendingStatuses = []Status{StatusWaitingFast, StatusWaitingAccurate, StatusWaitingExtraction}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusWaitingFast, StatusWaitingAccurate, StatusWaitingExtraction, StatusDone, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further work is performed for a clip in status s.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusFailed
}

// Stage returns the stage that runs while a clip is in status s.
// Terminal and unknown statuses have no stage.
func (s Status) Stage() (Stage, bool) {
	switch s {
	case StatusWaitingFast:
		return StageFastTranscription, true
	case StatusWaitingAccurate:
		return StageAccurateTranscription, true
	case StatusWaitingExtraction:
		return StageExtraction, true
	default:
		return "", false
	}
}

// Next returns the status a clip advances to once the stage of s succeeds.
func (s Status) Next() Status {
	switch s {
	case StatusWaitingFast:
		return StatusWaitingAccurate
	case StatusWaitingAccurate:
		return StatusWaitingExtraction
	case StatusWaitingExtraction:
		return StatusDone
	default:
		return s
	}
}

// Clip is one submitted audio clip and everything the pipeline has learned about it.
// Pointer fields are nil until the stage that owns them completes.
type Clip struct {
	ID       int64  `json:"id" db:"id"`
	AudioRef string `json:"audio" db:"audio"`
	Status   Status `json:"status" db:"status"`

	FastTranscript        *string  `json:"transcription_fast" db:"transcription_fast"`
	FastTranscriptSeconds *float64 `json:"transcription_fast_time" db:"transcription_fast_time"`

	AccurateTranscript        *string  `json:"transcription_accurate" db:"transcription_accurate"`
	AccurateTranscriptSeconds *float64 `json:"transcription_accurate_time" db:"transcription_accurate_time"`

	ExtractionRaw *string `json:"resolution" db:"resolution"`

	FailedStage   *Stage  `json:"failed_stage" db:"failed_stage"`
	FailureReason *string `json:"failure_reason" db:"failure_reason"`

	IsValid *bool `json:"is_valid" db:"is_valid"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
