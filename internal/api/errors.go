package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for client-side validation.
var (
	// ErrInvalidBaseURL indicates the configured API base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("api base URL must be an absolute http or https URL")

	// ErrInvalidSeedCount indicates a seed count outside the range the server accepts.
	ErrInvalidSeedCount = fmt.Errorf("seed count must be between %d and %d", MinSeedCount, MaxSeedCount)
)

// NetworkError reports a transport failure: the request never produced an HTTP response.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError reports a non-2xx response. Message is the server-provided detail, if any.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d %s", e.Status, http.StatusText(e.Status))
}

// DecodeError reports a response body that is malformed or has an unexpected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Fallback messages shown when the server gives no detail.
const (
	msgGenericFailure = "Failed to load users"
	msgNetworkFailure = "Unable to reach the data API"
	msgDecodeFailure  = "The data API returned an unexpected response"
)

// UserMessage converts any client error into the single line shown to the user.
// The server's own message wins when present.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		if serverErr.Message != "" {
			return serverErr.Message
		}
		return fmt.Sprintf("Server error (%d %s)", serverErr.Status, http.StatusText(serverErr.Status))
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return fmt.Sprintf("%s at %s", msgNetworkFailure, netErr.URL)
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return msgDecodeFailure
	}

	if errors.Is(err, ErrInvalidSeedCount) {
		return ErrInvalidSeedCount.Error()
	}

	return msgGenericFailure
}
