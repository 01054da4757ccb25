package api

import (
	"errors"
	"fmt"
	"strings"
)

// Error is an application-level rejection from the backend: a 4xx/5xx
// response carrying either a plain-text or a structured JSON body.
type Error struct {
	Status  int
	Body    string // trimmed response body when it is not a JSON object
	Message string // "message" field when the body is a JSON object
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("api returned status %d: %s", e.Status, e.Message)
	case e.Body != "":
		return fmt.Sprintf("api returned status %d: %s", e.Status, e.Body)
	default:
		return fmt.Sprintf("api returned status %d", e.Status)
	}
}

// Normalize reduces any failed request to a single display string. The
// backend may answer with plain text, JSON, or not at all, so the priority
// order is: a plain-text response body, then the message field of a
// structured body, then the transport error text, then the caller's
// fallback phrase for the action.
func Normalize(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if body := strings.TrimSpace(apiErr.Body); body != "" {
			return body
		}
		if msg := strings.TrimSpace(apiErr.Message); msg != "" {
			return msg
		}
		return fallback
	}
	if text := strings.TrimSpace(err.Error()); text != "" {
		return text
	}
	return fallback
}

func newError(status int, data []byte) *Error {
	var structured struct {
		Message string `json:"message"`
	}
	if err := jsonCodec.Unmarshal(data, &structured); err == nil {
		return &Error{Status: status, Message: strings.TrimSpace(structured.Message)}
	}
	return &Error{Status: status, Body: strings.TrimSpace(string(data))}
}
