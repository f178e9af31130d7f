package mock

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sumerqa/chatkit/schema"
)

// IdentityService is an in-memory stand-in for the identity provider's /auth
// endpoints. Every handler can be overridden per test; the defaults implement
// the provider contract with HS256-signed JWT pairs. RefreshCalls counts
// renewal exchanges so tests can assert the single-flight property.
type IdentityService struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	RefreshCalls int64
	LoginCalls   int64

	LoginHandler   http.HandlerFunc
	SignupHandler  http.HandlerFunc
	RefreshHandler http.HandlerFunc
	MeHandler      http.HandlerFunc

	mu    sync.Mutex
	users map[string]*user
}

type user struct {
	id       string
	email    string
	username string
	password string
}

// NewIdentityService creates a service with no registered users.
func NewIdentityService() *IdentityService {
	return &IdentityService{
		Secret:     []byte("mock_signing_secret"),
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
		users:      map[string]*user{},
	}
}

// Register seeds a user account and returns its identity.
func (s *IdentityService) Register(email, username, password string) *schema.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &user{id: uuid.NewString(), email: email, username: username, password: password}
	s.users[email] = u
	return &schema.Identity{UserID: u.id, Email: u.email, Username: u.username}
}

// IssuePair mints an access/refresh token pair for the given subject.
func (s *IdentityService) IssuePair(subject string) *schema.Token {
	return &schema.Token{
		AccessToken:  s.IssueToken(subject, AccessTokenType, s.AccessTTL),
		RefreshToken: s.IssueToken(subject, RefreshTokenType, s.RefreshTTL),
		TokenType:    "bearer",
	}
}

func (s *IdentityService) defaultLoginHandler(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&s.LoginCalls, 1)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	email := r.FormValue("username")
	password := r.FormValue("password")
	s.mu.Lock()
	u, ok := s.users[email]
	s.mu.Unlock()
	if !ok || u.password != password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, s.IssuePair(u.id))
}

func (s *IdentityService) defaultSignupHandler(w http.ResponseWriter, r *http.Request) {
	request := &schema.SignupRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	s.mu.Lock()
	if _, ok := s.users[request.Email]; ok {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	}
	u := &user{id: uuid.NewString(), email: request.Email, username: request.Username, password: request.Password}
	s.users[request.Email] = u
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.IssuePair(u.id))
}

func (s *IdentityService) defaultRefreshHandler(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&s.RefreshCalls, 1)
	request := &schema.RefreshRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	subject, err := s.verifyToken(request.RefreshToken, RefreshTokenType)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	writeJSON(w, http.StatusOK, s.IssuePair(subject))
}

func (s *IdentityService) defaultMeHandler(w http.ResponseWriter, r *http.Request) {
	subject, err := s.verifyToken(bearerToken(r), AccessTokenType)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.id == subject {
			writeJSON(w, http.StatusOK, &schema.Identity{UserID: u.id, Email: u.email, Username: u.username})
			return
		}
	}
	writeError(w, http.StatusUnauthorized, "User not found")
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, &schema.Error{Detail: detail})
}
