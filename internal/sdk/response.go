package sdk

import (
	"fmt"
	"net/http"

	"github.com/robotops/ro1mon/internal/errors"
)

// Response is the API envelope. Callers unwrap it with Ok(), mirroring
// the vendor convention of checking the response before touching data.
type Response[T any] struct {
	// StatusCode is the HTTP status of the underlying call.
	StatusCode int

	// Data is the decoded body, valid only when the call succeeded.
	Data T

	// ErrMessage is the API error text for failed calls.
	ErrMessage string
}

// Ok returns the data or a structured error for non-2xx responses.
func (r Response[T]) Ok() (T, error) {
	if r.StatusCode >= 200 && r.StatusCode < 300 {
		return r.Data, nil
	}

	var zero T
	msg := r.ErrMessage
	if msg == "" {
		msg = http.StatusText(r.StatusCode)
	}

	suggestion := ""
	switch r.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		suggestion = "Check your API token in the workspace settings page."
	case http.StatusNotFound:
		suggestion = "Check the workspace URL and that the robot is online."
	}

	return zero, errors.New(errors.ErrSDK,
		fmt.Sprintf("API returned %d: %s", r.StatusCode, msg),
		suggestion)
}

// IsOk reports whether the call succeeded without unwrapping the data.
func (r Response[T]) IsOk() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
