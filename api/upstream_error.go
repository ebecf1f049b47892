package api

import (
	"errors"
	"net/http"
)

// UpstreamError is a failure reported by the remote listing source: an HTTP
// status, a non-success resultCode, or a timeout (408).
type UpstreamError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// StatusCodeOf extracts an HTTP-like status from err, or 0 when none applies.
func StatusCodeOf(err error) int {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode
	}
	var status *StatusError
	if errors.As(err, &status) {
		return status.StatusCode
	}
	if errors.Is(err, ErrTimeout) {
		return http.StatusRequestTimeout
	}
	return 0
}
