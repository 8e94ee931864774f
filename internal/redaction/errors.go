// Package redaction provides error types for redaction operations.
package redaction

import "fmt"

// ErrLogValuePanic is returned when LogValue() panics
type ErrLogValuePanic struct {
	Key        string
	PanicValue any
	StackTrace string
}

func (e *ErrLogValuePanic) Error() string {
	return fmt.Sprintf("LogValue() panicked for attribute %q: %v", e.Key, e.PanicValue)
}

// ErrRedactionDepthExceeded describes an attribute whose nesting exceeds the redaction depth limit
type ErrRedactionDepthExceeded struct {
	Key   string
	Depth int
}

func (e *ErrRedactionDepthExceeded) Error() string {
	return fmt.Sprintf("redaction depth limit (%d) exceeded for attribute %q", e.Depth, e.Key)
}

// ErrRegexCompilationFailed describes a redaction pattern that failed to compile
type ErrRegexCompilationFailed struct {
	Pattern string
	Err     error
}

func (e *ErrRegexCompilationFailed) Error() string {
	return fmt.Sprintf("failed to compile regex pattern %q: %v", e.Pattern, e.Err)
}
