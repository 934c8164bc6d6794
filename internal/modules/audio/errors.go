package audio

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when narration is requested but no object
// store bucket is configured.
var ErrNotConfigured = errors.New("audio storage is not configured")

// GenerationError reports a failed speech synthesis call.
type GenerationError struct {
	ID  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("audio generation for %s failed: %v", e.ID, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// UploadError reports a failed object store write.
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("audio upload of %s failed: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
