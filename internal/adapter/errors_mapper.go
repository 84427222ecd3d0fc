package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError converts a non-2xx response into a sentinel or descriptive
// error. Server error bodies are JSON objects with a message field; the
// message is surfaced verbatim so the UI can show it inline.
func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	msg := extractErrorMessage(resp.Body())

	switch code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusConflict:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrConflict, msg)
		}
		return ErrConflict
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrBadRequest, msg)
		}
		return ErrBadRequest
	}

	if msg == "" {
		msg = http.StatusText(code)
	}
	return fmt.Errorf("http %d: %s", code, msg)
}

// extractErrorMessage pulls the human-readable message out of an error body.
// Falls back to the trimmed raw body when it is not the expected JSON shape.
func extractErrorMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}

	return trimmed
}
