package auth

import (
	"context"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/sumerqa/chatkit/client/auth/store"
	"github.com/sumerqa/chatkit/client/auth/transport"
	"github.com/sumerqa/chatkit/schema"
)

// ErrSessionExpired mirrors transport.ErrSessionExpired so callers can match
// it without importing the transport package.
var ErrSessionExpired = transport.ErrSessionExpired

// Service ties the identity provider to the credential store: a successful
// login or signup seeds the store atomically, logout clears it, and every
// transition fans out to the store's change listeners.
type Service struct {
	provider *Provider
	sessions store.Store
	validate *validator.Validate
	logger   zerolog.Logger
}

type ServiceOption func(*Service)

// WithLogger sets the service logger; the default discards everything.
func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a Service backed by the given provider and session store.
func NewService(provider *Provider, sessions store.Store, options ...ServiceOption) *Service {
	ret := &Service{
		provider: provider,
		sessions: sessions,
		validate: newValidator(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Login authenticates with an email/password pair and seeds the session
// store with the issued credential pair.
func (s *Service) Login(ctx context.Context, email, password string) (store.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	input := &loginInput{Email: email, Password: password}
	if err := s.validate.Struct(input); err != nil {
		return store.Session{}, err
	}
	token, err := s.provider.Login(ctx, email, password)
	if err != nil {
		return store.Session{}, err
	}
	return s.establish(token, email)
}

// Signup registers a new account and seeds the session store with its first
// credential pair. Input constraints match the provider's own validation so
// malformed requests never reach the wire.
func (s *Service) Signup(ctx context.Context, request *schema.SignupRequest) (store.Session, error) {
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))
	request.Username = strings.TrimSpace(request.Username)
	input := &signupInput{Email: request.Email, Username: request.Username, Password: request.Password}
	if err := s.validate.Struct(input); err != nil {
		return store.Session{}, err
	}
	token, err := s.provider.Signup(ctx, request)
	if err != nil {
		return store.Session{}, err
	}
	return s.establish(token, request.Email)
}

// Logout clears the session store; listeners observe a single logged-out
// transition.
func (s *Service) Logout() error {
	s.logger.Info().Msg("logged out")
	return s.sessions.Clear()
}

// Session returns the current session and whether one is established.
func (s *Service) Session() (store.Session, bool) {
	return s.sessions.Lookup()
}

// OnChange registers a session-change listener; the returned func removes it.
func (s *Service) OnChange(listener store.Listener) func() {
	return s.sessions.OnChange(listener)
}

func (s *Service) establish(token *schema.Token, email string) (store.Session, error) {
	session := store.Session{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}
	if err := s.sessions.Set(session); err != nil {
		return session, err
	}
	s.logger.Info().Str("email", email).Msg("session established")
	return session, nil
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type signupInput struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=3,max=32,username"`
	Password string `validate:"required,min=8,max=128,password"`
}

var (
	usernameExpr = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	lowerExpr    = regexp.MustCompile(`[a-z]`)
	upperExpr    = regexp.MustCompile(`[A-Z]`)
	digitExpr    = regexp.MustCompile(`\d`)
	specialExpr  = regexp.MustCompile(`[^\w\s]`)
)

func newValidator() *validator.Validate {
	ret := validator.New(validator.WithRequiredStructEnabled())
	_ = ret.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameExpr.MatchString(fl.Field().String())
	})
	_ = ret.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return lowerExpr.MatchString(value) &&
			upperExpr.MatchString(value) &&
			digitExpr.MatchString(value) &&
			specialExpr.MatchString(value)
	})
	return ret
}
