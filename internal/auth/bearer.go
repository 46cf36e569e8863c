// ABOUTME: HS256 bearer token verification and the shunt filter wiring it in
// ABOUTME: An alternate auth scheme layered over the hooks, outside the four strategies

package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/2389/warden/internal/hooks"
	"github.com/2389/warden/internal/store"
)

// Bearer token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrMissingClaim = errors.New("missing required claim")
)

// BearerVerifier verifies and mints HS256 signed JWTs whose "sub" claim
// names a stored user.
type BearerVerifier struct {
	secret []byte
}

// NewBearerVerifier creates a verifier with the given signing secret.
func NewBearerVerifier(secret []byte) *BearerVerifier {
	return &BearerVerifier{secret: secret}
}

// Verify validates the token and extracts the username from the "sub" claim.
func (v *BearerVerifier) Verify(tokenString string) (username string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("%w: sub", ErrMissingClaim)
	}

	return sub, nil
}

// Generate creates a new token for the given username with expiration.
func (v *BearerVerifier) Generate(username string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(expiresIn).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// BearerShunt returns a shunt_is_valid_user filter accepting bearer tokens
// that name a stored user. Requests without a bearer field get no opinion,
// so the four core strategies run as usual; requests with one are decided
// here, pass or fail.
func BearerShunt(verifier *BearerVerifier, st store.Store, logger *slog.Logger) hooks.FilterFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(value any, args ...any) (any, bool) {
		if len(args) == 0 {
			return nil, false
		}
		req, ok := args[0].(Request)
		if !ok {
			return nil, false
		}
		tok, ok := req.Field(FieldBearer)
		if !ok || tok == "" {
			return nil, false
		}

		username, err := verifier.Verify(tok)
		if err != nil {
			logger.Warn("bearer token rejected", "error", err)
			return false, true
		}
		if _, ok := st.Lookup(username); !ok {
			logger.Warn("bearer token for unknown user", "user", username)
			return false, true
		}

		req.Identity().Set(username)
		return true, true
	}
}
