package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 24 * time.Hour
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name   string
		userID string
		email  string
		role   string
	}{
		{
			name:   "system admin",
			userID: "0b7c7a36-2a54-4d4f-9c1e-7b3f4d1a9a01",
			email:  "admin@test.com",
			role:   "SYSTEM_ADMIN",
		},
		{
			name:   "normal user",
			userID: "5f0f4f0e-8d9a-4d83-a1a2-3e2fb8d2d0c4",
			email:  "user@test.com",
			role:   "NORMAL_USER",
		},
		{
			name:   "store owner",
			userID: "a3c2b1d0-0000-4000-8000-000000000001",
			email:  "owner@test.com",
			role:   "STORE_OWNER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.userID, tt.email, tt.role)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.userID, claims.UserID)
			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.role, claims.Role)
			assert.Equal(t, tt.userID, claims.Subject)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewJWTMaker(secretKey, 15*time.Minute)

	validToken, err := maker.GenerateToken("id", "user@test.com", "NORMAL_USER")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "expired token", token: createExpiredToken(t, secretKey)},
		{name: "wrong secret key", token: createTokenWithWrongSecret(t)},
		{name: "tampered token", token: validToken + "tampered"},
		{name: "unsigned token", token: createUnsignedToken(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_TokenExpiration(t *testing.T) {
	maker := NewJWTMaker("test_secret_key", time.Second)

	token, err := maker.GenerateToken("id", "user@test.com", "NORMAL_USER")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	require.NoError(t, err)

	time.Sleep(2100 * time.Millisecond)

	_, err = maker.ParseToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func createExpiredToken(t *testing.T, secretKey string) string {
	maker := NewJWTMaker(secretKey, -time.Hour)
	token, err := maker.GenerateToken("id", "user@test.com", "NORMAL_USER")
	require.NoError(t, err)
	return token
}

func createTokenWithWrongSecret(t *testing.T) string {
	wrongMaker := NewJWTMaker("wrong_secret_key", 15*time.Minute)
	token, err := wrongMaker.GenerateToken("id", "user@test.com", "NORMAL_USER")
	require.NoError(t, err)
	return token
}

func createUnsignedToken(t *testing.T) string {
	claims := CustomClaims{
		UserID: "id",
		Role:   "SYSTEM_ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return token
}
