package loader

import (
	"errors"
	"fmt"
)

// ParseError wraps a specific error with context about where it occurred.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("parse error at line %d, column %q: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error at line %d, column %q: %v (value: %q)", e.Line, e.Column, e.Err, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	ErrNoSource          = errors.New("no source path configured")
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrEmptySource       = errors.New("source has no header row")
	ErrMissingColumn     = errors.New("missing required column")
	ErrInvalidFieldCount = errors.New("invalid field count")
	ErrTimestampTooShort = errors.New("timestamp shorter than offset suffix")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
	ErrInvalidDuration   = errors.New("invalid duration")
)

// Kind returns a short label for the sentinel err wraps, for metrics and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoSource):
		return "no_source"
	case errors.Is(err, ErrSourceUnavailable):
		return "source_unavailable"
	case errors.Is(err, ErrEmptySource):
		return "empty_source"
	case errors.Is(err, ErrMissingColumn):
		return "missing_column"
	case errors.Is(err, ErrInvalidFieldCount):
		return "invalid_field_count"
	case errors.Is(err, ErrTimestampTooShort), errors.Is(err, ErrInvalidTimestamp):
		return "invalid_timestamp"
	case errors.Is(err, ErrInvalidDuration):
		return "invalid_duration"
	default:
		return "read_error"
	}
}
