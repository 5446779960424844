// Package auth issues and inspects the bearer tokens that gate the API. The
// ledger core itself never sees credentials; it receives a pre-verified
// caller reference extracted here.
package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/felipecesargomes/banking-api/config"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token's claims cannot be read.
var ErrInvalidToken = errors.New("invalid token")

// AuthService issues signed tokens and extracts the caller from verified
// ones.
type AuthService struct {
	cfg    config.Jwt
	logger *slog.Logger
}

// NewAuthService creates an AuthService with the given JWT settings.
func NewAuthService(cfg config.Jwt, logger *slog.Logger) *AuthService {
	return &AuthService{cfg: cfg, logger: logger}
}

// Login issues a signed token for the given subject.
func (s *AuthService) Login(username string) (string, error) {
	if username == "" {
		return "", errors.New("username is required")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.Expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("token signing failed", "error", err)
		return "", err
	}
	s.logger.Info("token issued", "subject", username)
	return signed, nil
}

// Subject extracts the caller reference from an already-verified token.
func (s *AuthService) Subject(token *jwt.Token) (string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
