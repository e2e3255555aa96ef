package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Minute)

	first, err := svc.Issue("alice")
	require.NoError(t, err)
	second, err := svc.Issue("alice")
	require.NoError(t, err)
	require.NotEqual(t, first, second, "every token carries its own id")

	username, err := svc.Validate(first)
	require.NoError(t, err)
	require.Equal(t, "alice", username)
}

func TestTokenRejections(t *testing.T) {
	svc := NewTokenService("secret", time.Minute)
	token, err := svc.Issue("alice")
	require.NoError(t, err)

	_, err = NewTokenService("other", time.Minute).Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Validate(strings.TrimSuffix(token, token[len(token)-2:]))
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Issue("")
	require.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	svc := NewTokenService("secret", time.Minute)
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.Issue("alice")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = svc.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenWithoutExpiryIsRejected(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Minute).Validate(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}
