package download

import (
	"errors"
	"fmt"

	"github.com/ytget/nobsytdl/internal/model"
)

// ErrorCode identifies a user-fixable precondition failure
type ErrorCode string

const (
	ErrorCodeEmptyURL            ErrorCode = "EMPTY_URL"
	ErrorCodeDestinationNotFound ErrorCode = "DESTINATION_NOT_FOUND"
)

// ValidationError is returned before any job starts. Two validation errors
// match under errors.Is when their codes are equal.
type ValidationError struct {
	Code    ErrorCode
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports whether target is a ValidationError with the same code
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Code == e.Code
}

var (
	// ErrEmptyURL is matched by every empty-URL validation failure
	ErrEmptyURL = &ValidationError{Code: ErrorCodeEmptyURL, Field: "url", Message: "Please enter a YouTube URL"}

	// ErrDestinationNotFound is matched by every missing-destination failure
	ErrDestinationNotFound = &ValidationError{Code: ErrorCodeDestinationNotFound, Field: "destination", Message: "Download path does not exist"}

	// ErrJobInProgress is returned when a job is submitted while another is running
	ErrJobInProgress = errors.New("a job is already running")
)

func newDestinationNotFound(dir string) *ValidationError {
	return &ValidationError{
		Code:    ErrorCodeDestinationNotFound,
		Field:   "destination",
		Message: fmt.Sprintf("Download path does not exist: %s", dir),
	}
}

// EngineError wraps a failure reported by the engine. The cause text is kept
// verbatim in the message.
type EngineError struct {
	Kind  model.JobKind
	Cause error
}

func (e *EngineError) Error() string {
	switch e.Kind {
	case model.JobKindInfo:
		return fmt.Sprintf("Failed to get video info: %v", e.Cause)
	case model.JobKindDownload:
		return fmt.Sprintf("Download failed: %v", e.Cause)
	default:
		return fmt.Sprintf("%s failed: %v", e.Kind, e.Cause)
	}
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}
