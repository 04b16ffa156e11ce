// Package apierr defines the error kinds surfaced by the gateway handlers.
//
// Every error returned from the frequency tracker or the upstream clients is
// an *Error carrying a Kind, so handlers can translate failures into HTTP
// responses without inspecting message text.
package apierr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	// KindUnknown is reported by KindOf for errors that are not *Error values.
	KindUnknown Kind = iota
	// KindInvalidArgument marks a bad query parameter.
	KindInvalidArgument
	// KindUpstream marks a failed or malformed response from a third-party service.
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindUpstream:
		return "UpstreamError"
	default:
		return "Unknown"
	}
}

// Error is a tagged error with a caller-facing message. Err keeps the
// underlying cause for logs and errors.Is checks; it is never shown to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidArgument builds a KindInvalidArgument error.
func InvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// Upstream builds a KindUpstream error wrapping cause, which may be nil.
func Upstream(message string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: cause}
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// Message returns the caller-facing message for err. Errors that are not
// *Error values fall back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
