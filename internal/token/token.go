package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when the embedded expiry has passed
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for a bad signature or malformed token
	ErrTokenInvalid = errors.New("token invalid")
)

// Issuer issues and verifies stateless member tokens. Every service is
// configured with the same secret, so a token issued by the identity
// service verifies anywhere without a shared session store.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates a token issuer with the shared signing secret
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token carrying the member identifier with issued-at and
// expiry claims
func (i *Issuer) Issue(memberID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"member_id": memberID,
		"iat":       now.Unix(),
		"exp":       now.Add(i.ttl).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded member
// identifier. Both failure modes are terminal: there is no refresh.
func (i *Issuer) Verify(tokenString string) (string, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return "", ErrTokenInvalid
	}

	memberID, ok := claims["member_id"].(string)
	if !ok || memberID == "" {
		return "", ErrTokenInvalid
	}
	return memberID, nil
}
