package github

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error.
type Kind int

const (
	// KindTransport means no usable response was obtained: the request could
	// not be built or sent, or the body could not be read.
	KindTransport Kind = iota + 1

	// KindAPI means the service answered with a non-2xx status.
	KindAPI

	// KindParse means a 2xx body lacked the expected field.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// defaultMessage is used when a failed response carries no message field.
const defaultMessage = "Unknown error"

// Error is returned by every Client method.
type Error struct {
	Kind Kind
	// Op names the client operation, e.g. "create_blob".
	Op string
	// Status is the HTTP status code, or 0 when no response was obtained.
	Status int
	// Message is the API's message field, or a description of the failure.
	Message string
	// DocumentationURL is copied from API error bodies when present.
	DocumentationURL string
	Err              error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindAPI:
		return fmt.Sprintf("%s: request failed with status %d: %s", e.Op, e.Status, e.Message)
	case KindParse:
		return fmt.Sprintf("%s: failed to parse response: %s", e.Op, e.Message)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: HTTP request failed: %v", e.Op, e.Err)
		}
		return fmt.Sprintf("%s: HTTP request failed: %s", e.Op, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func transportError(op string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Err: err}
}

func parseError(op, message string) *Error {
	return &Error{Kind: KindParse, Op: op, Message: message}
}

// StatusCode returns the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status, true
	}
	return 0, false
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// IsNotFound reports a 404. GitHub also answers 404 for private resources the
// token cannot see.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsUnauthorized reports a 401 (bad or expired token).
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

// IsForbidden reports a 403 (insufficient scope or permissions).
func IsForbidden(err error) bool { return hasStatus(err, http.StatusForbidden) }

// IsUnprocessable reports a 422, which GitHub uses for validation failures
// such as an existing ref or a non-fast-forward update.
func IsUnprocessable(err error) bool { return hasStatus(err, http.StatusUnprocessableEntity) }

func hasStatus(err error, status int) bool {
	code, ok := StatusCode(err)
	return ok && code == status
}
