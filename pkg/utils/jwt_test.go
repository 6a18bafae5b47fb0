package utils

import (
	"testing"
	"time"

	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := &models.AdminUser{ID: 9, Email: "admin@example.com", Role: models.RoleAdmin}

	signed, claims, err := GenerateToken(user, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	parsed, err := ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(9), parsed.UserID)
	assert.Equal(t, models.RoleAdmin, parsed.Role)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestValidateTokenRejectsExpiredAndForeignTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := &models.AdminUser{ID: 1, Role: models.RoleEditor}

	expired, _, err := GenerateToken(user, time.Now().Add(-TokenLifetime-time.Hour))
	require.NoError(t, err)
	_, err = ValidateToken(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	t.Setenv("JWT_SECRET", "other-secret")
	fresh, _, err := GenerateToken(user, time.Now())
	require.NoError(t, err)
	t.Setenv("JWT_SECRET", "test-secret")
	_, err = ValidateToken(fresh)
	assert.Error(t, err)
}
