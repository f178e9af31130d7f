package mock

import "net/http"

// ServeHTTP dispatches to the per-endpoint handler, falling back to the
// defaults when a test did not override one.
func (s *IdentityService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/auth/login":
		s.pick(s.LoginHandler, s.defaultLoginHandler)(w, r)
	case "/auth/signup":
		s.pick(s.SignupHandler, s.defaultSignupHandler)(w, r)
	case "/auth/refresh":
		s.pick(s.RefreshHandler, s.defaultRefreshHandler)(w, r)
	case "/auth/me":
		s.pick(s.MeHandler, s.defaultMeHandler)(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (s *IdentityService) pick(override, fallback http.HandlerFunc) http.HandlerFunc {
	if override != nil {
		return override
	}
	return fallback
}
