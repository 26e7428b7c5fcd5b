package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "edusync-auth"
)

func TestParseAuthToken_RoundTrip(t *testing.T) {
	token, err := GenerateAuthToken(testIssuer, "user-1", "tenant-1", []string{"learner"}, time.Hour, testSignKey)
	require.NoError(t, err)

	auth, err := ParseAuthToken(token, testSignKey, testIssuer)
	require.NoError(t, err)

	assert.Equal(t, "user-1", auth.UserID)
	assert.Equal(t, "tenant-1", auth.TenantID)
	assert.Equal(t, []string{"learner"}, auth.Roles)
	assert.Empty(t, auth.DeviceID, "device identity is not a token claim")
}

func TestParseAuthToken_Expired(t *testing.T) {
	token, err := GenerateAuthToken(testIssuer, "user-1", "tenant-1", nil, -time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = ParseAuthToken(token, testSignKey, testIssuer)
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestParseAuthToken_WrongKey(t *testing.T) {
	token, err := GenerateAuthToken(testIssuer, "user-1", "tenant-1", nil, time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ParseAuthToken(token, "other-key", testIssuer)
	assert.Error(t, err)
}

func TestParseAuthToken_WrongIssuer(t *testing.T) {
	token, err := GenerateAuthToken("someone-else", "user-1", "tenant-1", nil, time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ParseAuthToken(token, testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestGenerateAuthToken_InvalidParams(t *testing.T) {
	_, err := GenerateAuthToken("", "user-1", "tenant-1", nil, time.Hour, testSignKey)
	assert.Error(t, err)

	_, err = GenerateAuthToken(testIssuer, "user-1", "tenant-1", nil, 0, testSignKey)
	assert.Error(t, err)

	_, err = GenerateAuthToken(testIssuer, "user-1", "tenant-1", nil, time.Hour, "")
	assert.Error(t, err)
}
