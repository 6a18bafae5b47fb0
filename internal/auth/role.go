// Package auth holds the admin session state and the role hierarchy used
// to gate admin operations.
package auth

import "github.com/chachabrian/umrah-travel-backend/internal/models"

var roleLevels = map[models.Role]int{
	models.RoleEditor:     1,
	models.RoleAdmin:      2,
	models.RoleSuperAdmin: 3,
}

// Level returns the rank of role, 0 for unknown roles.
func Level(role models.Role) int {
	return roleLevels[role]
}

// ValidRole reports whether role is part of the hierarchy.
func ValidRole(role models.Role) bool {
	return Level(role) > 0
}

// HasPermission reports whether user may act at the required level. A
// nil user never has permission.
func HasPermission(user *models.AdminUser, required models.Role) bool {
	if user == nil {
		return false
	}
	level := Level(user.Role)
	return level > 0 && level >= Level(required)
}
