// Package ferrors provides typed errors for the storage core.
// This enables callers to use errors.Is()/errors.As() for specific error
// handling, following the taxonomy the core is specified to raise: input,
// authorization, resource, integrity, and transient errors.
package ferrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
// Use errors.Is(err, ferrors.ErrNameConflict) to check for specific errors.
var (
	// Input errors (client mistakes, never retried internally).
	ErrNameConflict         = errors.New("name conflict")
	ErrCycleDetected        = errors.New("cycle detected")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// Authorization errors.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	// Resource errors.
	ErrNotFound                = errors.New("not found")
	ErrQuotaExceeded           = errors.New("quota exceeded")
	ErrBatchSizeExceeded       = errors.New("batch size exceeded")
	ErrBatchFileCountExceeded  = errors.New("batch file count exceeded")
	ErrFolderFileCountExceeded = errors.New("folder file count exceeded")

	// Integrity errors (codec/frame corruption).
	ErrInvalidLength  = errors.New("invalid length")
	ErrInvalidPadding = errors.New("invalid padding")
	ErrTruncatedFrame = errors.New("truncated frame")
	ErrCorruptFrame   = errors.New("corrupt frame")

	// Transient errors (caller may retry; never retried internally).
	ErrIoError             = errors.New("io error")
	ErrDatabaseUnavailable = errors.New("database unavailable")

	// Operation-level.
	ErrCancelled = errors.New("operation cancelled")
)

// OpError wraps an error with the operation and target that failed.
type OpError struct {
	Op  string // e.g. "blobstore.put", "namespace.renameFolder"
	Key string // storageKey, path, or id identifying the target
	Err error  // underlying sentinel or wrapped error
}

func (e *OpError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// NewOpError creates a new OpError.
func NewOpError(op, key string, err error) *OpError {
	return &OpError{Op: op, Key: key, Err: err}
}

// ValidationError represents an input validation error on a named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Is reports whether err matches target, delegating to errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context, or returns nil if err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsCancelled reports whether err indicates a cancelled operation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsCorrupt reports whether err indicates frame/codec corruption.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorruptFrame) || errors.Is(err, ErrTruncatedFrame)
}

// IsClientError reports whether err is one of the classes that must never
// be retried internally (NameConflict, CycleDetected, NotFound,
// QuotaExceeded and friends are always client errors).
func IsClientError(err error) bool {
	switch {
	case errors.Is(err, ErrNameConflict),
		errors.Is(err, ErrCycleDetected),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrQuotaExceeded),
		errors.Is(err, ErrBatchSizeExceeded),
		errors.Is(err, ErrBatchFileCountExceeded),
		errors.Is(err, ErrFolderFileCountExceeded),
		errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrUnsupportedMediaType):
		return true
	default:
		return false
	}
}
