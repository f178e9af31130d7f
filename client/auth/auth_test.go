package auth_test

import (
	"context"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sumerqa/chatkit/client/auth"
	"github.com/sumerqa/chatkit/client/auth/mock"
	"github.com/sumerqa/chatkit/client/auth/store"
	"github.com/sumerqa/chatkit/schema"
)

const (
	testEmail    = "user@example.com"
	testPassword = "Sup3r-secret"
)

func newService(t *testing.T) (*auth.Service, *mock.IdentityService, store.Store) {
	t.Helper()
	idp := mock.NewIdentityService()
	server := httptest.NewServer(idp)
	t.Cleanup(server.Close)
	sessions := store.NewMemoryStore()
	return auth.NewService(auth.NewProvider(server.URL), sessions), idp, sessions
}

func TestLoginSeedsSessionStore(t *testing.T) {
	service, idp, sessions := newService(t)
	idp.Register(testEmail, "user", testPassword)

	var transitions int64
	service.OnChange(func(_ store.Session, active bool) {
		if active {
			atomic.AddInt64(&transitions, 1)
		}
	})

	session, err := service.Login(context.Background(), "  User@Example.com ", testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	stored, active := sessions.Lookup()
	assert.True(t, active)
	assert.Equal(t, session, stored)
	assert.Equal(t, int64(1), atomic.LoadInt64(&transitions))
}

func TestLoginRejectedCredentials(t *testing.T) {
	service, idp, sessions := newService(t)
	idp.Register(testEmail, "user", testPassword)

	_, err := service.Login(context.Background(), testEmail, "Wrong-passw0rd")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, active := sessions.Lookup()
	assert.False(t, active)
}

func TestLoginValidationNeverReachesWire(t *testing.T) {
	service, idp, _ := newService(t)

	_, err := service.Login(context.Background(), "not-an-email", testPassword)
	require.Error(t, err)
	_, err = service.Login(context.Background(), testEmail, "")
	require.Error(t, err)
	assert.Equal(t, int64(0), atomic.LoadInt64(&idp.LoginCalls))
}

func TestSignupValidation(t *testing.T) {
	service, _, _ := newService(t)
	for _, testCase := range []struct {
		name    string
		request *schema.SignupRequest
	}{
		{"malformed email", &schema.SignupRequest{Email: "nope", Username: "user_1", Password: testPassword}},
		{"short username", &schema.SignupRequest{Email: testEmail, Username: "ab", Password: testPassword}},
		{"username with spaces", &schema.SignupRequest{Email: testEmail, Username: "a user", Password: testPassword}},
		{"short password", &schema.SignupRequest{Email: testEmail, Username: "user_1", Password: "Ab1!"}},
		{"no uppercase", &schema.SignupRequest{Email: testEmail, Username: "user_1", Password: "sup3r-secret"}},
		{"no digit", &schema.SignupRequest{Email: testEmail, Username: "user_1", Password: "Super-secret"}},
		{"no special", &schema.SignupRequest{Email: testEmail, Username: "user_1", Password: "Sup3rSecret"}},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Signup(context.Background(), testCase.request)
			assert.Error(t, err)
		})
	}
}

func TestSignupSeedsSessionStore(t *testing.T) {
	service, _, sessions := newService(t)

	session, err := service.Signup(context.Background(), &schema.SignupRequest{
		Email: testEmail, Username: "user_1", Password: testPassword,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	stored, active := sessions.Lookup()
	assert.True(t, active)
	assert.Equal(t, session, stored)
}

func TestSignupDuplicateEmail(t *testing.T) {
	service, idp, _ := newService(t)
	idp.Register(testEmail, "user", testPassword)

	_, err := service.Signup(context.Background(), &schema.SignupRequest{
		Email: testEmail, Username: "user_1", Password: testPassword,
	})
	var apiErr *schema.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Equal(t, "Email already registered", apiErr.Detail)
}

func TestLogoutClearsSession(t *testing.T) {
	service, idp, sessions := newService(t)
	idp.Register(testEmail, "user", testPassword)

	_, err := service.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)

	var loggedOut int64
	service.OnChange(func(_ store.Session, active bool) {
		if !active {
			atomic.AddInt64(&loggedOut, 1)
		}
	})
	require.NoError(t, service.Logout())

	_, active := sessions.Lookup()
	assert.False(t, active)
	assert.Equal(t, int64(1), atomic.LoadInt64(&loggedOut))
}
