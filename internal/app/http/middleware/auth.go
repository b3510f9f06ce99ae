package middleware

import (
	"crypto/subtle"
	"net/http"
)

const internalTokenHeader = "X-Internal-Token"

// InternalAuth gates the API behind the shared service token. The compare
// is constant-time so the token cannot be probed byte by byte.
func InternalAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(internalTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
