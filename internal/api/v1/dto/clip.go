package dto

import (
	"strings"

	"voicemail-whisper/internal/api/errors"
	"voicemail-whisper/internal/app/model"
	"voicemail-whisper/internal/app/status"
	"voicemail-whisper/internal/app/storage"
)

// CreateClipRequest submits audio already present in the audio store.
type CreateClipRequest struct {
	Audio string `json:"audio" binding:"required"`
}

// Validate performs domain-specific validation
func (r *CreateClipRequest) Validate() error {
	if err := storage.ValidateRef(r.Audio); err != nil {
		return errors.NewValidationError("Invalid clip request", map[string]string{
			"audio": "must be a file name inside the audio store",
		})
	}
	return nil
}

// CreateClipResponse is returned as soon as the clip is stored.
type CreateClipResponse struct {
	ID int64 `json:"id"`
}

// SetValidityRequest records a reviewer's verdict.
type SetValidityRequest struct {
	IsValid *bool `json:"is_valid" binding:"required"`
}

// ListClipsQuery filters GET /api/v1/clips. Status is a comma separated list.
type ListClipsQuery struct {
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	Status string `form:"status"`
}

// Validate performs domain-specific validation
func (q *ListClipsQuery) Validate() error {
	for _, s := range q.Statuses() {
		if !s.Valid() {
			return errors.NewValidationError("Invalid list query", map[string]string{
				"status": "unknown status " + string(s),
			})
		}
	}
	return nil
}

// Statuses splits the status filter.
func (q *ListClipsQuery) Statuses() []model.Status {
	if strings.TrimSpace(q.Status) == "" {
		return nil
	}
	var out []model.Status
	for _, part := range strings.Split(q.Status, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, model.Status(part))
		}
	}
	return out
}

// ClipListResponse wraps a page of status views.
type ClipListResponse struct {
	Clips []status.StatusView `json:"clips"`
	Total int                 `json:"total"`
}
