package client

import (
	"fmt"
	"net/http"
	"time"
)

// APIError is returned when GitHub answers with a non-success status
type APIError struct {
	Operation        string
	StatusCode       int
	Message          string
	DocumentationURL string
	RateLimited      bool
	ResetAt          time.Time // zero unless the primary rate limit was hit
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("failed to %s (%d): %s", e.Operation, e.StatusCode, e.Message)
	if e.RateLimited && !e.ResetAt.IsZero() {
		msg += fmt.Sprintf(" [rate reset in %s]", time.Until(e.ResetAt).Round(time.Second))
	}
	return msg
}

// NotFound reports whether GitHub answered 404
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
