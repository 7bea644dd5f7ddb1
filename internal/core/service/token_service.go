package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/perusahaan-a/employee-api/internal/core/domain"
)

// TokenService issues and verifies HS256-signed bearer tokens. Tokens carry
// only the principal id and an expiry; there is no revocation list.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given principal and returns it along with its
// lifetime in seconds.
func (s *TokenService) Issue(principalID string) (string, int64, error) {
	claims := jwt.MapClaims{
		"id":  principalID,
		"exp": time.Now().Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.ttl.Seconds()), nil
}

// Verify checks signature and expiry and returns the embedded principal id.
// Any failure collapses to ErrInvalidToken; callers never see parser internals.
func (s *TokenService) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrInvalidToken
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return "", domain.ErrInvalidToken
	}
	return id, nil
}
