package transport

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/sumerqa/chatkit/client/auth/store"
	"github.com/sumerqa/chatkit/schema"
)

// ErrSessionExpired is returned when the renewal credential is absent or
// rejected, or the identity provider cannot be reached. The session has been
// cleared by the time the error surfaces, so callers should route it to a
// re-authentication prompt rather than an inline failure.
var ErrSessionExpired = errors.New("session expired")

// Provider exchanges a renewal credential for a fresh token pair. It is
// satisfied by auth.Provider.
type Provider interface {
	Refresh(ctx context.Context, refreshToken string) (*schema.Token, error)
}

// RoundTripper decorates every outbound request with the session's bearer
// token, classifies http.StatusUnauthorized as an authentication failure and
// drives a single coordinated renewal with at most one replay per request.
// Transport errors and every other status pass through untouched.
type RoundTripper struct {
	transport http.RoundTripper
	store     store.Store
	provider  Provider
	gate      gate
	logger    zerolog.Logger
}

// New creates a RoundTripper; a Provider is required unless the session can
// never expire (no refresh path), in which case a 401 simply logs the
// session out.
func New(options ...Option) (*RoundTripper, error) {
	ret := &RoundTripper{
		transport: http.DefaultTransport,
		store:     store.NewMemoryStore(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret, nil
}

// Store exposes the credential store backing this transport.
func (r *RoundTripper) Store() store.Store {
	return r.store
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	session, _ := r.store.Lookup()
	token := session.AccessToken
	renewed := false

	// Renew ahead of the call when the access token is a JWT that has
	// already run out; opaque tokens fall through to the reactive path.
	if token != "" && session.RefreshToken != "" && expired(token) {
		fresh, err := r.renew(req.Context(), token)
		if err != nil {
			return nil, err
		}
		token = fresh
		renewed = true
	}

	attempt := clone(req)
	authorize(attempt, token)
	resp, err := r.transport.RoundTrip(attempt)
	if err != nil {
		// network or timeout failure, never a reason to renew
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || renewed {
		return resp, nil
	}
	_ = resp.Body.Close()

	fresh, err := r.renew(req.Context(), token)
	if err != nil {
		return nil, err
	}
	replay := clone(req)
	authorize(replay, fresh)
	// the replay outcome is final, even when it is another 401
	return r.transport.RoundTrip(replay)
}

// renew coordinates a single-flight renewal. failed is the access token the
// caller just saw rejected: when the store already holds a different token a
// concurrent cycle has completed and its result is reused instead of spending
// the renewal credential again.
func (r *RoundTripper) renew(ctx context.Context, failed string) (string, error) {
	return r.gate.renew(ctx, func() (string, error) {
		session, active := r.store.Lookup()
		if session.AccessToken != "" && session.AccessToken != failed {
			return session.AccessToken, nil
		}
		if session.RefreshToken == "" || r.provider == nil {
			if active {
				_ = r.store.Clear()
			}
			return "", errors.WithMessage(ErrSessionExpired, "no renewal credential")
		}
		token, err := r.provider.Refresh(ctx, session.RefreshToken)
		if err != nil {
			if ctx.Err() != nil {
				// cancellation says nothing about the credential; keep the
				// session so the next failure starts a fresh cycle
				return "", err
			}
			r.logger.Warn().Err(err).Msg("credential renewal failed, logging session out")
			_ = r.store.Clear()
			return "", errors.WithMessagef(ErrSessionExpired, "renewal rejected: %v", err)
		}
		next := session
		next.AccessToken = token.AccessToken
		if token.RefreshToken != "" {
			next.RefreshToken = token.RefreshToken
		}
		if err = r.store.Set(next); err != nil {
			r.logger.Warn().Err(err).Msg("failed to persist renewed session")
		}
		r.logger.Debug().Msg("session credential renewed")
		return token.AccessToken, nil
	})
}

func authorize(req *http.Request, token string) {
	if token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}
