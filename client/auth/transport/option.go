package transport

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sumerqa/chatkit/client/auth/store"
)

type Option func(*RoundTripper)

// WithStore sets the credential store consulted before every request.
func WithStore(store store.Store) Option {
	return func(t *RoundTripper) {
		t.store = store
	}
}

// WithProvider sets the identity provider used for credential renewal.
func WithProvider(provider Provider) Option {
	return func(t *RoundTripper) {
		t.provider = provider
	}
}

// WithTransport sets the underlying round tripper, http.DefaultTransport
// otherwise.
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		t.transport = transport
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *RoundTripper) {
		t.logger = logger
	}
}
