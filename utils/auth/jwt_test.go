package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, expiry time.Duration) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(JWTConfig{Secret: "test-secret", Expiry: expiry, Issuer: "admission-advisor-test"})
	require.NoError(t, err)
	return m
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	_, err := NewJWTManager(JWTConfig{})
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	m := newTestManager(t, time.Hour)

	token, jti, err := m.GenerateAccessToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, "42", claims.Subject)
	assert.InDelta(t, time.Hour.Seconds(), TokenTTL(claims).Seconds(), 5)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	m := newTestManager(t, time.Hour)
	other, err := NewJWTManager(JWTConfig{Secret: "another-secret"})
	require.NoError(t, err)

	token, _, err := other.GenerateAccessToken(1)
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	m := newTestManager(t, time.Hour)

	past := time.Now().Add(-2 * time.Hour)
	claims := Claims{
		UserID:    3,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(past),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Zero(t, TokenTTL(&claims))
}

func TestValidateTokenRequiresUser(t *testing.T) {
	m := newTestManager(t, time.Hour)

	claims := Claims{
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestValidateTokenGarbage(t *testing.T) {
	m := newTestManager(t, time.Hour)
	_, err := m.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
