package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized matches any *APIError with status 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound matches any *APIError with status 404.
	ErrNotFound = errors.New("not found")
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is match the status sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// MessageOr returns the server-provided message carried by err, or fallback
// when err is not an *APIError or carries none.
func MessageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Message != http.StatusText(apiErr.StatusCode) {
		return apiErr.Message
	}
	return fallback
}

// errorMessage pulls a human message out of an error body. The API uses
// "message"; framework errors use "detail" or "error".
func errorMessage(body []byte, status int) string {
	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, key := range []string{"message", "detail", "error"} {
			if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) < 200 && !strings.HasPrefix(text, "{") {
		return text
	}
	return http.StatusText(status)
}
