package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT() *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestIssue_DistinctClasses(t *testing.T) {
	t.Parallel()
	m := newTestJWT()

	pair, err := m.Issue(context.Background(), "user-1", "a@b.c")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.True(t, pair.RefreshTokenExpiry.After(pair.AccessTokenExpiry))

	claims, err := m.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@b.c", claims.Email)
	require.NotNil(t, claims.IssuedAt)

	claims, err = m.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)

	// each class only verifies with its own key
	_, err = m.ParseAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ParseRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssue_EmptySecretFails(t *testing.T) {
	t.Parallel()
	m := NewJWTManager("access-secret", "", time.Minute, time.Hour)

	_, err := m.Issue(context.Background(), "user-1", "a@b.c")
	require.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()
	m := newTestJWT()
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tok, _, err := m.GenerateAccessToken("user-1", "a@b.c")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseAccessToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()
	m := newTestJWT()
	now := time.Now()

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	tests := map[string]string{
		"garbage":     "not.a.jwt",
		"empty":       "",
		"alg none":    sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}}),
		"hs512":       sign(jwt.SigningMethodHS512, m.AccessSecret, &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}}),
		"wrong key":   sign(jwt.SigningMethodHS256, []byte("other"), &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}}),
		"no exp":      sign(jwt.SigningMethodHS256, m.AccessSecret, &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}}),
		"no subject":  sign(jwt.SigningMethodHS256, m.AccessSecret, &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}}),
		"bad payload": sign(jwt.SigningMethodHS256, m.AccessSecret, jwt.MapClaims{"sub": 42, "exp": now.Add(time.Hour).Unix()}),
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := m.ParseAccessToken(tok)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
