package upstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error is returned when the account service answers with a non-2xx status.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the textual payload of the response, empty when the body was not text.
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Message returns the account service's own text for a failed call, or "" when err carries none.
func Message(err error) string {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Message
	}
	return ""
}

// StatusCode returns the upstream status of a failed call, or 0 for transport failures.
func StatusCode(err error) int {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.StatusCode
	}
	return 0
}

// textPayload extracts a message from a response body: a JSON string is unquoted, other JSON
// values yield "", and anything that is not JSON is taken as plain text.
func textPayload(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}
	if json.Valid(body) {
		var s string
		if err := json.Unmarshal(body, &s); err != nil {
			return ""
		}
		return s
	}
	return strings.TrimSpace(string(body))
}
