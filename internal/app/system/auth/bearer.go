package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every reason a Bearer token is refused.
var ErrInvalidToken = errors.New("invalid token")

// BearerVerifier checks HS256 tokens issued by the hosted auth provider.
type BearerVerifier struct {
	secret []byte
	issuer string
}

// Claims is the token shape the auth provider issues.
type Claims struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// NewBearerVerifier returns a verifier for secret. When issuer is non-empty
// the iss claim must match it.
func NewBearerVerifier(secret, issuer string) (*BearerVerifier, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters, got %d", len(secret))
	}
	return &BearerVerifier{secret: []byte(secret), issuer: issuer}, nil
}

// Verify parses tok and returns its principal.
func (v *BearerVerifier) Verify(tok string) (*SessionUser, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tok, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	email := strings.TrimSpace(claims.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}
	return &SessionUser{
		Email:   email,
		Name:    claims.Name,
		Picture: claims.Picture,
		Source:  SourceBearer,
	}, nil
}

// Issue signs a token for u valid for ttl. The dev login and tests use it;
// production tokens come from the auth provider.
func (v *BearerVerifier) Issue(u SessionUser, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:   u.Email,
		Name:    u.Name,
		Picture: u.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
