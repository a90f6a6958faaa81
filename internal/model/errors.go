package model

// ErrorResponse is the body of every error the gateway writes.
type ErrorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// ValidationError reports a request rejected before reaching the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
