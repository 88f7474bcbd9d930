package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/eventhive/eventhive-go/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		UserName: "jordan",
		Email:    "jordan@example.com",
	}
}

func TestCreateAndParseToken(t *testing.T) {
	user := testUser()

	token, err := CreateToken("secret", time.Hour, user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.UserName, claims.Username)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := CreateToken("secret", time.Hour, testUser())
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := CreateToken("secret", -time.Minute, testUser())
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("secret", "not-a-token")
	assert.Error(t, err)
}
