package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *TokenManager {
	return NewTokenManager("test-secret", time.Hour, 24*time.Hour, 10*time.Minute)
}

func TestIssuePair_AccessTokenParses(t *testing.T) {
	tm := newManager()

	pair, err := tm.IssuePair("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	claims, err := tm.Parse(pair.AccessToken, PurposeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestParse_WrongPurpose(t *testing.T) {
	tm := newManager()

	token, err := tm.IssueVerification("user-1", "a@b.com")
	require.NoError(t, err)

	_, err = tm.Parse(token, PurposeAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	claims, err := tm.Parse(token, PurposeVerify)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestParse_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute, time.Hour, -time.Minute)

	token, err := tm.IssueVerification("user-1", "a@b.com")
	require.NoError(t, err)

	_, err = tm.Parse(token, PurposeVerify)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParse_ForeignSecret(t *testing.T) {
	pair, err := NewTokenManager("other", time.Hour, time.Hour, time.Hour).IssuePair("user-1")
	require.NoError(t, err)

	_, err = newManager().Parse(pair.AccessToken, PurposeAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = newManager().Parse("garbage", PurposeAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret-123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("secret-123", hash))
	assert.False(t, CheckPasswordHash("secret-124", hash))
}
