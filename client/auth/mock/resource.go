package mock

import (
	"net/http"
	"strings"
)

// Protect wraps handler so it only serves requests carrying a valid access
// token issued by this service; everything else gets the provider's 401
// envelope. Combine with httptest.NewServer to simulate the chat backend.
func (s *IdentityService) Protect(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.verifyToken(bearerToken(r), AccessTokenType); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		handler(w, r)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}
