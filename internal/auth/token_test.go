package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("user-123", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := UserIDFromToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("user-123", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = UserIDFromToken(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("user-123", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = UserIDFromToken(token, []byte("another-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMalformedTokenRejected(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := UserIDFromToken(raw, testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}
