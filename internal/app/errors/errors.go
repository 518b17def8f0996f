package errors

import (
	stderrors "errors"
	"fmt"

	"voicemail-whisper/internal/app/model"
)

// Common error types
var (
	// Configuration errors
	ErrMissingAPIKey = New("API key is required")

	// Store errors
	ErrClipNotFound   = New("clip not found")
	ErrNothingToWrite = New("update has no fields")

	// Audio errors
	ErrAudioNotFound = New("audio file not found")

	// Adapter errors
	ErrEmptyResponse = New("empty response")
	ErrNoTier        = New("no transcriber configured for tier")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// StoreError reports that the clip record store was unavailable or refused an operation.
type StoreError struct {
	Op     string
	ClipID int64
	Err    error
}

func (e *StoreError) Error() string {
	if e.ClipID != 0 {
		return fmt.Sprintf("store %s clip %d: %v", e.Op, e.ClipID, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err as a StoreError, returning nil for a nil err.
func NewStoreError(op string, clipID int64, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, ClipID: clipID, Err: err}
}

// AdapterError reports a failed transcription or extraction call.
type AdapterError struct {
	Stage    model.Stage
	Provider string
	Timeout  bool
	Err      error
}

func (e *AdapterError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s via %s timed out: %v", e.Stage, e.Provider, e.Err)
	}
	return fmt.Sprintf("%s via %s failed: %v", e.Stage, e.Provider, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the clip id is unknown.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrClipNotFound)
}

// IsAudioNotFound reports whether err means the audio reference does not exist.
func IsAudioNotFound(err error) bool {
	return stderrors.Is(err, ErrAudioNotFound)
}

// IsStoreError reports whether err is or wraps a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return stderrors.As(err, &se)
}

// AsAdapterError returns the AdapterError inside err, if any.
func AsAdapterError(err error) (*AdapterError, bool) {
	var ae *AdapterError
	if stderrors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// RequiredField returns an error for missing required fields
func RequiredField(field string) error {
	return Newf("%s is required", field)
}

// InvalidField returns an error for invalid field values
func InvalidField(field string, reason string) error {
	return Newf("%s is invalid: %s", field, reason)
}
