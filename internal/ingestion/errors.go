package ingestion

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoText is returned when a document decodes but holds no usable text,
// typically a scanned PDF without a text layer.
var ErrNoText = errors.New("could not extract text from file")

// UnsupportedFormatError is returned for file extensions with no decoder.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported file format: no extension (allowed: %s)", strings.Join(SupportedExtensions(), ", "))
	}
	return fmt.Sprintf("unsupported file format: %s (allowed: %s)", e.Extension, strings.Join(SupportedExtensions(), ", "))
}

// ExtractError wraps a decoder failure.
type ExtractError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extraction failed: %s", e.Format, e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}
