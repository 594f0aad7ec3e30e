// Package identity issues and verifies the bearer tokens that identify callers.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/at-ishikawa/imjang/internal/apperr"
)

const issuer = "imjang"

// Claims identifies the caller of a request.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer. ttl is the lifetime of signed tokens.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive: %s", ttl)
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Sign returns a token for userID.
func (i *Issuer) Sign(userID, email string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", apperr.Validation("user id is required")
	}
	now := i.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies token and returns its claims. Any failure is Unauthorized.
func (i *Issuer) Parse(token string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Unauthorized("token has expired")
		}
		return nil, apperr.Unauthorized("token is invalid")
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || claims.UserID == "" {
		return nil, apperr.Unauthorized("token is invalid")
	}
	return claims, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

type ctxKey struct{}

// WithClaims returns a copy of ctx carrying the caller's claims.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// CallerID returns the id of the authenticated caller, or "" when the request is anonymous.
func CallerID(ctx context.Context) string {
	if c, ok := ctx.Value(ctxKey{}).(*Claims); ok {
		return c.UserID
	}
	return ""
}
