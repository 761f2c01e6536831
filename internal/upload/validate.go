package upload

import (
	"errors"
	"fmt"
	"strings"
)

// MaxFileSize is the largest accepted upload, 5 MiB.
const MaxFileSize int64 = 5 * 1024 * 1024

// AllowedTypes are the accepted MIME types.
var AllowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrEmptyFile       = errors.New("file is empty")
)

// ValidationError reports a file rejected before any network call.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the declared type and size of f.
func Validate(f File) error {
	if !allowedType(f.ContentType) {
		return &ValidationError{
			Field:   "contentType",
			Message: fmt.Sprintf("%q is not allowed, use JPEG, PNG or WebP", f.ContentType),
			Err:     ErrUnsupportedType,
		}
	}
	if f.Size <= 0 {
		return &ValidationError{Field: "size", Message: "file is empty", Err: ErrEmptyFile}
	}
	if f.Size > MaxFileSize {
		return &ValidationError{
			Field:   "size",
			Message: fmt.Sprintf("file is %d bytes, the limit is %d bytes (5 MB)", f.Size, MaxFileSize),
			Err:     ErrFileTooLarge,
		}
	}
	return nil
}

func allowedType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	for _, t := range AllowedTypes {
		if ct == t {
			return true
		}
	}
	return false
}
