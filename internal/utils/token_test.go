package utils_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memory-backend/internal/utils"
)

func TestCreateAndParseToken(t *testing.T) {
	userID := uuid.New()

	pair, err := utils.CreateToken(userID, "alice", "secret", time.Hour, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := utils.ParseToken(pair.AccessToken, "secret")
	require.NoError(t, err)
	assert.Equal(t, "access", claims["type"])

	id, username, err := utils.ClaimsToIdentity(claims)
	require.NoError(t, err)
	assert.Equal(t, userID, id)
	assert.Equal(t, "alice", username)

	claims, err = utils.ParseToken(pair.RefreshToken, "secret")
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims["type"])
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	pair, err := utils.CreateToken(uuid.New(), "alice", "secret", time.Hour, time.Hour)
	require.NoError(t, err)

	_, err = utils.ParseToken(pair.AccessToken, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	pair, err := utils.CreateToken(uuid.New(), "alice", "secret", -time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = utils.ParseToken(pair.AccessToken, "secret")
	assert.Error(t, err)
}
