package store

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLine marks a record with the wrong number of fields.
	ErrMalformedLine = errors.New("malformed line")
	// ErrMalformedValue marks a record whose field holds an unusable value.
	ErrMalformedValue = errors.New("malformed value")
	// ErrMissingCustomers is returned when the customer file cannot be opened.
	ErrMissingCustomers = errors.New("customer file not found")
)

// LineError describes a skipped line of a data file.
type LineError struct {
	Path string
	Line int
	Kind error
	Msg  string
}

func (e *LineError) Error() string {
	if e == nil {
		return "invalid line"
	}
	if e.Path == "" {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s: %s", e.Path, e.Line, e.Kind, e.Msg)
}

func (e *LineError) Unwrap() error {
	return e.Kind
}

func malformedLine(format string, args ...any) error {
	return &LineError{Kind: ErrMalformedLine, Msg: fmt.Sprintf(format, args...)}
}

func malformedValue(format string, args ...any) error {
	return &LineError{Kind: ErrMalformedValue, Msg: fmt.Sprintf(format, args...)}
}
