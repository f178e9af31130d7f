package transport

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expirySkew renews slightly ahead of the recorded expiry so a token does not
// run out mid-flight.
const expirySkew = 10 * time.Second

func clone(r *http.Request) *http.Request {
	cloned := r.Clone(r.Context())
	// deep-copy body so the original request stays replayable
	if r.Body != nil {
		buf, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewBuffer(buf))
		cloned.Body = io.NopCloser(bytes.NewBuffer(buf))
	}
	return cloned
}

// expired reports whether token is a JWT whose exp claim has passed. Opaque
// or claimless tokens report false; their expiry is only known from a server
// rejection.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now().Add(expirySkew))
}
