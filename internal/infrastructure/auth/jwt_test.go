package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/armory/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Username: "quartermaster",
		Role:     domain.RoleBaseCommander,
		BaseID:   "base-alpha",
	}
}

func TestJWTGenerateAndVerify(t *testing.T) {
	manager := NewJWTManager("test-secret", 12*time.Hour)

	token, err := manager.Generate(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "quartermaster", claims.Username)
	assert.Equal(t, domain.RoleBaseCommander, claims.Role)
	assert.Equal(t, "base-alpha", claims.BaseID)
}

func TestJWTVerifyExpired(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate(testUser())
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestJWTVerifyWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate(testUser())
	require.NoError(t, err)

	other := NewJWTManager("other-secret", time.Hour)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTVerifyGarbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	_, err := manager.Verify("not.a.token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
