package mock

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Token types stamped into the typ claim.
const (
	AccessTokenType  = "access_token"
	RefreshTokenType = "refresh_token"
)

// IssueToken mints a signed JWT for subject with the given type and lifetime;
// a negative ttl yields an already expired token, handy in expiry tests.
func (s *IdentityService) IssueToken(subject, tokenType string, ttl time.Duration) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"typ": tokenType,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString(s.Secret)
	return signed
}

func (s *IdentityService) verifyToken(raw, tokenType string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return "", err
	}
	if typ, _ := claims["typ"].(string); typ != tokenType {
		return "", errors.Errorf("unexpected token type %q", typ)
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", errors.New("missing subject")
	}
	return subject, nil
}
