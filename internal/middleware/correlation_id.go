package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

const HeaderCorrelationID = "X-Correlation-Id"

func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cid := r.Header.Get(HeaderCorrelationID)
		if cid == "" {
			cid = uuid.NewString()
		}

		// expose to client + propagate to the backend
		w.Header().Set(HeaderCorrelationID, cid)

		next.ServeHTTP(w, r.WithContext(WithCorrelationID(r.Context(), cid)))
	})
}
