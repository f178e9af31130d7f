package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/sumerqa/chatkit/schema"
)

// ErrInvalidCredentials is returned when the identity provider rejects a
// login or signup exchange.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Provider is an HTTP client for the identity provider's /auth endpoints. It
// runs on a plain transport on purpose: token issuance and renewal traffic
// must never recurse through the authenticated dispatcher.
type Provider struct {
	baseURL string
	client  *http.Client
}

type ProviderOption func(*Provider)

// WithHTTPClient overrides the provider's HTTP client.
func WithHTTPClient(client *http.Client) ProviderOption {
	return func(p *Provider) {
		p.client = client
	}
}

// NewProvider creates a Provider rooted at baseURL.
func NewProvider(baseURL string, options ...ProviderOption) *Provider {
	ret := &Provider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  http.DefaultClient,
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Login exchanges an email/password pair for a token pair. The endpoint
// accepts the OAuth2 password form, with the email in the username field.
func (p *Provider) Login(ctx context.Context, email, password string) (*schema.Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	token := &schema.Token{}
	if err = p.exchange(req, token); err != nil {
		if status(err) == http.StatusUnauthorized {
			return nil, errors.WithMessage(ErrInvalidCredentials, email)
		}
		return nil, err
	}
	return token, nil
}

// Signup registers a new account and returns its first token pair.
func (p *Provider) Signup(ctx context.Context, request *schema.SignupRequest) (*schema.Token, error) {
	req, err := p.jsonRequest(ctx, p.baseURL+"/auth/signup", request)
	if err != nil {
		return nil, err
	}
	token := &schema.Token{}
	if err = p.exchange(req, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Refresh exchanges a renewal credential for a fresh token pair; it satisfies
// transport.Provider.
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (*schema.Token, error) {
	req, err := p.jsonRequest(ctx, p.baseURL+"/auth/refresh", &schema.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}
	token := &schema.Token{}
	if err = p.exchange(req, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Identity fetches the user record behind an access token.
func (p *Provider) Identity(ctx context.Context, accessToken string) (*schema.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	identity := &schema.Identity{}
	if err = p.exchange(req, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

func (p *Provider) jsonRequest(ctx context.Context, URL string, payload interface{}) (*http.Request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, URL, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (p *Provider) exchange(req *http.Request, result interface{}) error {
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		ret := &schema.Error{StatusCode: resp.StatusCode}
		if err = json.Unmarshal(data, ret); err != nil || ret.Detail == "" {
			ret.Detail = strings.TrimSpace(string(data))
		}
		return ret
	}
	if err = json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to decode %v response: %w", req.URL.Path, err)
	}
	return nil
}

func status(err error) int {
	var apiErr *schema.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
