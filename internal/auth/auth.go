// Package auth issues and verifies the JWT tokens that carry a caller
// identity, and resolves that identity out of an incoming request's cookies
// or Authorization header.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

type Claims struct {
	jwt.RegisteredClaims
}

const (
	tokenExp = time.Hour * 3

	// CookieName is the cookie carrying the auth token.
	CookieName = "token"

	bearerPrefix = "Bearer "
)

var (
	ErrTokenMissing = errors.New("auth token not found")
	ErrTokenInvalid = errors.New("auth token is invalid or expired")
)

// BuildJWTString signs a token over userID with HS256.
func BuildJWTString(secret string, userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExp)),
		},
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("error creating signed JWT: %w", err)
	}

	return tokenString, nil
}

// Resolver derives a caller identity from request credentials. Verify is the
// strict path used by the auth guard; TryResolve is the best-effort path used
// where anonymous callers are allowed.
type Resolver struct {
	secret string
	logger *zap.SugaredLogger
}

func NewResolver(secret string, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{
		secret: secret,
		logger: logger,
	}
}

// ExtractToken picks the credential out of the request: the auth cookie is
// preferred, a bearer Authorization header is the fallback. Empty string when
// neither is present.
func (r *Resolver) ExtractToken(cookies map[string]string, authHeader string) string {
	if token := cookies[CookieName]; token != "" {
		return token
	}
	if strings.HasPrefix(authHeader, bearerPrefix) {
		return strings.TrimPrefix(authHeader, bearerPrefix)
	}
	return ""
}

// Verify checks the token and returns the subject user id. Missing and
// invalid tokens are distinguishable for logging but both unauthorized.
func (r *Resolver) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrTokenMissing
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(r.secret), nil
		})
	if err != nil || !token.Valid {
		r.logger.Debugf("token rejected: %v", err)
		return "", ErrTokenInvalid
	}

	if claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}

// TryResolve attempts extraction and verification, yielding ("", false)
// instead of an error when no valid credential is present.
func (r *Resolver) TryResolve(cookies map[string]string, authHeader string) (string, bool) {
	token := r.ExtractToken(cookies, authHeader)
	if token == "" {
		return "", false
	}

	userID, err := r.Verify(token)
	if err != nil {
		return "", false
	}

	return userID, true
}
