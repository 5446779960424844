package auth_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/felipecesargomes/banking-api/config"
	"github.com/felipecesargomes/banking-api/pkg/service/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *auth.AuthService {
	cfg := config.Jwt{Secret: "test-secret", Expiry: time.Hour}
	return auth.NewAuthService(cfg, slog.Default())
}

func parse(t *testing.T, signed, secret string) *jwt.Token {
	t.Helper()
	token, err := jwt.Parse(signed, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	return token
}

func TestLogin(t *testing.T) {
	svc := newService()

	signed, err := svc.Login("alice")
	require.NoError(t, err)

	token := parse(t, signed, "test-secret")
	sub, err := svc.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)

	exp, err := token.Claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}

func TestLogin_EmptyUsername(t *testing.T) {
	_, err := newService().Login("")
	assert.Error(t, err)
}

func TestLogin_WrongSecretFailsVerification(t *testing.T) {
	signed, err := newService().Login("alice")
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(*jwt.Token) (any, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}

func TestSubject_MissingClaim(t *testing.T) {
	svc := newService()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"iat": time.Now().Unix()})
	_, err := svc.Subject(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
