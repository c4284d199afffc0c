package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testJWT = JWTConfig{
	Secret:      "unit-test-secret",
	ExpiryHours: 2,
}

func TestGenerateAndParseToken_RoundTrip(t *testing.T) {
	userID := uuid.New()

	token, expiresAt, err := GenerateToken(userID, "budi@example.com", "ADMIN", testJWT)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(2*time.Hour), expiresAt, time.Minute)

	claims, err := ParseToken(token, testJWT)
	require.NoError(t, err)
	require.Equal(t, userID.String(), claims.Subject)
	require.Equal(t, "budi@example.com", claims.Email)
	require.Equal(t, "ADMIN", claims.Role)
}

func TestParseToken_ExpiredRejected(t *testing.T) {
	// expiry di masa lalu
	expired := JWTConfig{Secret: testJWT.Secret, ExpiryHours: -1}

	token, _, err := GenerateToken(uuid.New(), "budi@example.com", "USER", expired)
	require.NoError(t, err)

	_, err = ParseToken(token, testJWT)
	require.Error(t, err)
}

func TestParseToken_WrongSecretRejected(t *testing.T) {
	token, _, err := GenerateToken(uuid.New(), "budi@example.com", "USER", testJWT)
	require.NoError(t, err)

	_, err = ParseToken(token, JWTConfig{Secret: "different-secret", ExpiryHours: 2})
	require.Error(t, err)
}

func TestParseToken_GarbageRejected(t *testing.T) {
	_, err := ParseToken("definitely.not.ajwt", testJWT)
	require.Error(t, err)
}
