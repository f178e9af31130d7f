package client

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sumerqa/chatkit/client/auth/store"
)

type Option func(*Client)

// WithHTTPClient sets the HTTP client carrying the authenticated transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithSessionStore lets the client cache the resolved identity into the
// session after a successful identity check.
func WithSessionStore(sessions store.Store) Option {
	return func(c *Client) {
		c.sessions = sessions
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}
