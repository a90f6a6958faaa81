package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the configured origins. "*" answers with a literal wildcard; auth travels in the
// Authorization header, so no credentialed requests are allowed.
func CORS(allowOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", HeaderCorrelationID},
		ExposedHeaders: []string{HeaderCorrelationID},
		MaxAge:         300,
	})
}
