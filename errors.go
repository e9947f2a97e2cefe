package gcapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMissingAPIKey is returned by NewClient and LoadConfig when no API key is
// configured.
var ErrMissingAPIKey = &ConfigError{Field: "APIKey", Message: "Api key is required."}

// ConfigError reports an invalid Config. It is only returned at construction.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// APIError is returned when the API answered but the body carries a
// non-empty errorMessages list.
type APIError struct {
	Messages []string
	Response *Response
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return strings.Join(e.Messages, ", ")
}

// IsAPIError reports whether err is, or wraps, an *APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// StatusError is the transport error the default HTTP transport returns for
// non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
	Body       []byte
	RequestID  string
}

func (e *StatusError) Error() string {
	if e == nil {
		return ""
	}
	if e.RequestID != "" {
		return fmt.Sprintf("gcapi: http %d: %s (request_id=%s)", e.StatusCode, e.Message, e.RequestID)
	}
	return fmt.Sprintf("gcapi: http %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsUnauthorized reports whether err is a 401 StatusError.
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

// IsRateLimited reports whether err is a 429 StatusError.
func IsRateLimited(err error) bool { return hasStatus(err, http.StatusTooManyRequests) }

func hasStatus(err error, status int) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == status
	}
	return false
}

func statusErrorFromResponse(status int, body []byte, requestID string) *StatusError {
	return &StatusError{
		StatusCode: status,
		Message:    extractErrorDetail(status, body),
		Body:       body,
		RequestID:  requestID,
	}
}

func extractErrorDetail(status int, body []byte) string {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return fmt.Sprintf("HTTP %d", status)
	}

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err == nil {
		if msgs := errorMessagesFrom(parsed); len(msgs) > 0 {
			return strings.Join(msgs, ", ")
		}
		for _, key := range []string{"message", "error", "detail"} {
			if s, ok := parsed[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return raw
}

func errorMessagesFrom(parsed map[string]any) []string {
	list, ok := parsed["errorMessages"].([]any)
	if !ok || len(list) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(list))
	for _, m := range list {
		if s, ok := m.(string); ok {
			msgs = append(msgs, s)
			continue
		}
		msgs = append(msgs, fmt.Sprint(m))
	}
	return msgs
}
