// Package transport implements the authenticated request dispatcher as an
// http.RoundTripper: it attaches the session's bearer token to every outbound
// request, treats 401 Unauthorized as the one authentication-failure signal,
// coordinates a single-flight credential renewal across concurrent requests
// and replays each failed request exactly once with the renewed token. When
// renewal itself fails the session is cleared and ErrSessionExpired surfaces
// to the caller.
package transport
