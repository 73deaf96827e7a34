package skigv

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and map well to transport-level codes in a
// caller (HTTP status, exit code). ESTRUCTURE is specific to extraction: an
// expected top-level container is entirely absent from a document, so the
// data domain is unusable for that page.
const (
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable"
	ESTRUCTURE   = "structure"
	EINTERNAL    = "internal"
)

// Error represents an application-specific error.
type Error struct {
	// Code is machine-readable, one of the constants above.
	Code string

	// Message is human-readable.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("skigv error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors return EINTERNAL; nil returns the empty string.
func ErrorCode(err error) string {
	var e *Error
	var fe *FetchError
	var se *StructureError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fe):
		return EUNAVAILABLE
	case errors.As(err, &se):
		return ESTRUCTURE
	case errors.As(err, &e):
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return a generic message; nil returns the empty string.
func ErrorMessage(err error) string {
	var e *Error
	switch {
	case err == nil:
		return ""
	case errors.As(err, &e):
		return e.Message
	}
	return "Internal error."
}

// FetchError reports a failed page retrieval: a transport failure, a timeout,
// or a non-2xx response. StatusCode is zero when no response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// StructureError reports that a load-bearing container is entirely absent
// from a document. Extraction cannot proceed for this data domain; the
// container name identifies what the extractor expected so a markup change
// can be diagnosed.
type StructureError struct {
	URL       string
	Container string
}

// Error implements the error interface.
func (e *StructureError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("document %s: expected container %q not found", e.URL, e.Container)
	}
	return fmt.Sprintf("expected container %q not found", e.Container)
}
