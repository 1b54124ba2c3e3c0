package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "jobgate/pkg/domain-errors"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return signed
}

func TestInspectReadsExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	claims, err := Inspect(signedToken(t, exp))
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.Subject)
	assert.WithinDuration(t, exp, claims.ExpiresAt, time.Second)
	assert.False(t, claims.Expired())
	assert.False(t, claims.ExpiresWithin(30*time.Minute))
	assert.True(t, claims.ExpiresWithin(2*time.Hour))
}

func TestInspectExpiredToken(t *testing.T) {
	// Expired tokens still parse; staleness is a refresh trigger, not an error.
	claims, err := Inspect(signedToken(t, time.Now().Add(-time.Minute)))
	require.NoError(t, err)
	assert.True(t, claims.Expired())
}

func TestInspectOpaqueToken(t *testing.T) {
	_, err := Inspect("not-a-jwt")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestExpiresWithinWithoutExpClaim(t *testing.T) {
	assert.False(t, Claims{}.ExpiresWithin(time.Hour))
	assert.False(t, Claims{}.Expired())
}
