package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode marks a successful response whose body is not JSON.
	ErrDecode = errors.New("model response is not valid JSON")
	// ErrMissingText marks a JSON response without any reply text.
	ErrMissingText = errors.New("model response has no reply text")
)

// StatusError reports a non-success HTTP status from the model endpoint.
type StatusError struct {
	Code int
	Body string
	Err  error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("model endpoint returned status %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// snippet trims response bodies before they end up in logs.
func snippet(body []byte) string {
	const limit = 512
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "…"
}
