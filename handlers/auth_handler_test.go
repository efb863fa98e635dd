package handlers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizz_backend/models"
)

func TestGenerateToken_Claims(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := models.User{
		ID:   uuid.New(),
		Role: models.RoleTeacher,
	}

	signed, err := GenerateToken(&user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, models.RoleTeacher, claims["role"])

	exp := int64(claims["exp"].(float64))
	expected := time.Now().Add(tokenLifetime).Unix()
	assert.InDelta(t, expected, exp, 5)
}

func TestGenerateToken_RejectedWithWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := models.User{ID: uuid.New(), Role: models.RoleStudent}
	signed, err := GenerateToken(&user)
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}
