package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/acrsolucoedig-spec/cellparts/internal/cep"
	"github.com/acrsolucoedig-spec/cellparts/internal/clients"
	"github.com/acrsolucoedig-spec/cellparts/internal/middleware"
	"github.com/acrsolucoedig-spec/cellparts/internal/model"
)

const maxBody = 1 << 20

const msgInvalidBody = "Corpo da requisição inválido"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeClientError maps a client or validation error to the localized response.
func writeClientError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var (
		ve     *model.ValidationError
		apiErr *clients.APIError
	)
	switch {
	case errors.As(err, &ve):
		middleware.WriteError(w, r, http.StatusBadRequest, ve.Message)
	case errors.Is(err, cep.ErrInvalidLength):
		middleware.WriteError(w, r, http.StatusBadRequest, cep.ErrInvalidLength.Error())
	case errors.As(err, &apiErr):
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized:
			middleware.WriteError(w, r, http.StatusUnauthorized, middleware.MsgUnauthenticated)
		case apiErr.StatusCode == http.StatusBadRequest:
			msg := apiErr.Message
			if msg == "" {
				msg = fallback
			}
			middleware.WriteError(w, r, http.StatusBadRequest, msg)
		case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
			middleware.WriteError(w, r, apiErr.StatusCode, fallback)
		default:
			middleware.WriteError(w, r, http.StatusBadGateway, fallback)
		}
	default:
		middleware.WriteError(w, r, http.StatusBadGateway, fallback)
	}
}

// decodeJSON reads a bounded request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

type validator interface {
	Validate() error
}

// readRequest decodes and validates a body, writing the 400 itself on failure.
func readRequest(w http.ResponseWriter, r *http.Request, v validator) bool {
	if err := decodeJSON(r, v); err != nil {
		middleware.WriteError(w, r, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	if n, ok := v.(interface{ Normalize() }); ok {
		n.Normalize()
	}
	if err := v.Validate(); err != nil {
		writeClientError(w, r, err, msgInvalidBody)
		return false
	}
	return true
}
