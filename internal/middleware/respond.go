package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/acrsolucoedig-spec/cellparts/internal/model"
)

// WriteError writes the gateway's JSON error body.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Error:         msg,
		CorrelationID: GetCorrelationID(r.Context()),
	})
}
