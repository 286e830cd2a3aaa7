package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrRejected          = errors.New("request rejected")
	ErrServerError       = errors.New("server error")
	ErrMalformedResponse = errors.New("malformed response")
)

// HTTPError is the single failure type of the channel. StatusCode is 0 when
// no response was received. Message is the server-supplied "msg", if any.
// Err wraps one of the sentinel errors above and, where available, the
// underlying cause.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *HTTPError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s: %v", e.Method, e.Path, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %d: %v", e.Method, e.Path, e.StatusCode, e.Err)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// statusError maps a non-2xx status code onto a sentinel.
func statusError(code int) error {
	switch {
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return ErrServerError
	default:
		return ErrRejected
	}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// UserMessage returns the server-supplied message of err when there is one,
// otherwise fallback.
func UserMessage(err error, fallback string) string {
	var he *HTTPError
	if errors.As(err, &he) && he.Message != "" {
		return he.Message
	}
	return fallback
}

// tokenRejectionHints are fragments of the 422 messages the backend's JWT
// layer sends for a token it cannot decode or verify.
var tokenRejectionHints = []string{"signature", "token", "segments", "padding", "header", "jwt"}

// IsAuthRejection reports whether err means the server refused the
// credential: any 401, or a 422 whose message is about the token. Other
// 422s are validation failures.
func IsAuthRejection(err error) bool {
	var he *HTTPError
	if !errors.As(err, &he) {
		return false
	}
	switch he.StatusCode {
	case http.StatusUnauthorized:
		return true
	case http.StatusUnprocessableEntity:
		msg := strings.ToLower(he.Message)
		for _, hint := range tokenRejectionHints {
			if strings.Contains(msg, hint) {
				return true
			}
		}
	}
	return false
}
