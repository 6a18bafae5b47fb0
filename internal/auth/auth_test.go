package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasPermission(t *testing.T) {
	user := func(r models.Role) *models.AdminUser { return &models.AdminUser{Role: r} }

	tests := []struct {
		name     string
		user     *models.AdminUser
		required models.Role
		want     bool
	}{
		{"no user", nil, models.RoleAdmin, false},
		{"no user editor level", nil, models.RoleEditor, false},
		{"editor needs admin", user(models.RoleEditor), models.RoleAdmin, false},
		{"admin needs admin", user(models.RoleAdmin), models.RoleAdmin, true},
		{"super admin needs admin", user(models.RoleSuperAdmin), models.RoleAdmin, true},
		{"editor needs editor", user(models.RoleEditor), models.RoleEditor, true},
		{"admin needs super admin", user(models.RoleAdmin), models.RoleSuperAdmin, false},
		{"unknown role", user("guest"), models.RoleEditor, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.user, tt.required))
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StateUnknown, s.State())
	assert.False(t, s.HasPermission(models.RoleEditor))

	require.NoError(t, s.Begin())
	assert.Equal(t, StateChecking, s.State())

	user := &models.AdminUser{ID: 3, Role: models.RoleAdmin}
	require.NoError(t, s.Authenticate(user, "jti-1"))
	assert.Equal(t, StateAuthenticated, s.State())
	assert.Same(t, user, s.User())
	assert.Equal(t, "jti-1", s.TokenID())
	assert.True(t, s.HasPermission(models.RoleAdmin))

	require.NoError(t, s.End())
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Nil(t, s.User())
	assert.False(t, s.HasPermission(models.RoleEditor))
}

func TestSessionRejectsInvalidTransitions(t *testing.T) {
	s := NewSession()

	var terr *TransitionError
	assert.ErrorAs(t, s.Authenticate(&models.AdminUser{}, ""), &terr)
	assert.ErrorAs(t, s.End(), &terr)
	assert.ErrorAs(t, s.Reject(), &terr)

	require.NoError(t, s.Begin())
	assert.Error(t, s.Begin())
	assert.Error(t, s.Authenticate(nil, ""))
	require.NoError(t, s.Reject())
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Error(t, s.End())
}

func TestNilSessionHasNoPermission(t *testing.T) {
	var s *Session
	assert.False(t, s.HasPermission(models.RoleEditor))
}

func TestSessionFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Equal(t, StateUnknown, SessionFrom(c).State())

	s := NewSession()
	SetSession(c, s)
	assert.Same(t, s, SessionFrom(c))
}
