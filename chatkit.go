package chatkit

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/sumerqa/chatkit/client"
	"github.com/sumerqa/chatkit/client/auth"
	"github.com/sumerqa/chatkit/client/auth/store"
	"github.com/sumerqa/chatkit/client/auth/transport"
)

// Options configures a chatkit client; the struct tags allow populating it
// straight from CLI flags or a YAML config file.
type Options struct {
	BaseURL     string `yaml:"baseURL" json:"baseURL" short:"u" long:"url" description:"chat service base URL"`
	SessionFile string `yaml:"sessionFile,omitempty" json:"sessionFile,omitempty" short:"s" long:"session" description:"session file location; empty keeps the session in memory"`
}

// Client bundles the authenticated API client with the auth service and the
// session store they share.
type Client struct {
	API      *client.Client
	Auth     *auth.Service
	Sessions store.Store

	// HTTPClient carries the authenticated transport; reuse it for any call
	// that must share the session.
	HTTPClient *http.Client
}

type Option func(*builder)

type builder struct {
	logger       zerolog.Logger
	sessions     store.Store
	roundTripper http.RoundTripper
}

// WithLogger sets the logger shared by all components; the default discards
// everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *builder) {
		b.logger = logger
	}
}

// WithStore overrides the session store; it takes precedence over
// Options.SessionFile.
func WithStore(sessions store.Store) Option {
	return func(b *builder) {
		b.sessions = sessions
	}
}

// WithTransport overrides the underlying round tripper beneath the
// authenticated one, mainly for tests.
func WithTransport(roundTripper http.RoundTripper) Option {
	return func(b *builder) {
		b.roundTripper = roundTripper
	}
}

// New wires a session store, the authenticated dispatcher and the identity
// provider into a ready-to-use client.
func New(options *Options, opts ...Option) (*Client, error) {
	if options == nil || options.BaseURL == "" {
		return nil, errors.New("baseURL was empty")
	}
	b := &builder{logger: zerolog.Nop(), roundTripper: http.DefaultTransport}
	for _, opt := range opts {
		opt(b)
	}
	sessions := b.sessions
	if sessions == nil {
		if options.SessionFile != "" {
			var err error
			if sessions, err = store.NewFileStore(options.SessionFile); err != nil {
				return nil, err
			}
		} else {
			sessions = store.NewMemoryStore()
		}
	}
	provider := auth.NewProvider(options.BaseURL,
		auth.WithHTTPClient(&http.Client{Transport: b.roundTripper}))
	authRT, err := transport.New(
		transport.WithStore(sessions),
		transport.WithProvider(provider),
		transport.WithTransport(b.roundTripper),
		transport.WithLogger(b.logger),
	)
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{Transport: authRT}
	return &Client{
		API: client.New(options.BaseURL,
			client.WithHTTPClient(httpClient),
			client.WithSessionStore(sessions),
			client.WithLogger(b.logger)),
		Auth:       auth.NewService(provider, sessions, auth.WithLogger(b.logger)),
		Sessions:   sessions,
		HTTPClient: httpClient,
	}, nil
}
