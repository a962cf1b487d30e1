package middleware

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskcrew/taskcrew/internal/api/response"
)

// TransportAuth is middleware that verifies the shared secret presented by
// the transport layer in the X-Transport-Secret header. Only the bcrypt
// hash of the secret is configured on this side, so the plaintext never
// lives in this service's environment.
func TransportAuth(secretHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			secret := r.Header.Get("X-Transport-Secret")
			if secret == "" {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Transport secret is required", requestID)
				return
			}

			if bcrypt.CompareHashAndPassword([]byte(secretHash), []byte(secret)) != nil {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid transport secret", requestID)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
