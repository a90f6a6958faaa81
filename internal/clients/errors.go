package clients

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Service    string
	Method     string
	Path       string
	StatusCode int
	// Message is the backend's "message" field, empty when it sent none.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s %s: status %d: %s", e.Service, e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s %s: status %d", e.Service, e.Method, e.Path, e.StatusCode)
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func newAPIError(service, method, path string, resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{
		Service:    service,
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Message:    serverMessage(raw),
	}
}

// serverMessage extracts "message" from an error body. Validation pipes on the backend
// may send a list of messages; they are joined.
func serverMessage(raw []byte) string {
	var body struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Message) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(body.Message, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []string
	if err := json.Unmarshal(body.Message, &list); err == nil {
		return strings.TrimSpace(strings.Join(list, "; "))
	}
	return ""
}
