package handlers

import (
	"strings"

	"github.com/chachabrian/umrah-travel-backend/internal/apperr"
	"github.com/chachabrian/umrah-travel-backend/internal/auth"
	"github.com/chachabrian/umrah-travel-backend/internal/database"
	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ListAdminUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := database.ListAdminUsers(c.Request.Context(), db)
		if err != nil {
			respondError(c, err, "admin user")
			return
		}
		c.JSON(200, gin.H{"users": users})
	}
}

type CreateAdminUserInput struct {
	Username string      `json:"username" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	FullName string      `json:"fullName"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     models.Role `json:"role"`
}

// CreateAdminUser adds an account. Only a super_admin may create accounts
// above editor.
func CreateAdminUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateAdminUserInput
		if !bindJSON(c, &input) {
			return
		}
		if input.Role == "" {
			input.Role = models.RoleEditor
		}
		if !auth.ValidRole(input.Role) {
			badRequest(c, "role must be editor, admin or super_admin")
			return
		}
		if input.Role != models.RoleEditor && !auth.SessionFrom(c).HasPermission(models.RoleSuperAdmin) {
			respondError(c, apperr.Forbidden("Only a super admin can assign this role"), "")
			return
		}

		user := &models.AdminUser{
			Username: strings.TrimSpace(input.Username),
			Email:    models.NormalizeEmail(input.Email),
			FullName: strings.TrimSpace(input.FullName),
			Password: input.Password,
			Role:     input.Role,
			IsActive: true,
		}
		if err := user.HashPassword(); err != nil {
			respondError(c, err, "password")
			return
		}

		created, err := database.CreateAdminUser(c.Request.Context(), db, user)
		if err != nil {
			respondError(c, err, "admin user")
			return
		}
		c.JSON(201, gin.H{"user": created})
	}
}

// managedUser loads the account the caller wants to change. Accounts
// ranked above the caller are off limits.
func managedUser(c *gin.Context, db *gorm.DB, id uint) (*models.AdminUser, bool) {
	target, err := database.GetAdminUser(c.Request.Context(), db, id)
	if err != nil {
		respondError(c, err, "admin user")
		return nil, false
	}
	if !auth.SessionFrom(c).HasPermission(target.Role) {
		respondError(c, apperr.Forbidden("You cannot manage a user with a higher role"), "")
		return nil, false
	}
	return target, true
}

// keepsSuperAdmin answers 400 when removing target would leave no active
// super_admin.
func keepsSuperAdmin(c *gin.Context, db *gorm.DB, target *models.AdminUser) bool {
	if target.Role != models.RoleSuperAdmin || !target.IsActive {
		return true
	}
	n, err := database.CountActiveAdminUsers(c.Request.Context(), db, models.RoleSuperAdmin)
	if err != nil {
		respondError(c, err, "admin user")
		return false
	}
	if n <= 1 {
		badRequest(c, "At least one active super admin is required")
		return false
	}
	return true
}

type UpdateAdminUserInput struct {
	Username *string      `json:"username"`
	FullName *string      `json:"fullName"`
	Role     *models.Role `json:"role"`
	IsActive *bool        `json:"isActive"`
}

func UpdateAdminUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var input UpdateAdminUserInput
		if !bindJSON(c, &input) {
			return
		}

		target, ok := managedUser(c, db, id)
		if !ok {
			return
		}

		session := auth.SessionFrom(c)
		updates := map[string]interface{}{}
		if input.Username != nil {
			if strings.TrimSpace(*input.Username) == "" {
				badRequest(c, "username is required")
				return
			}
			updates["username"] = strings.TrimSpace(*input.Username)
		}
		if input.FullName != nil {
			updates["full_name"] = strings.TrimSpace(*input.FullName)
		}
		if input.Role != nil {
			if !auth.ValidRole(*input.Role) {
				badRequest(c, "role must be editor, admin or super_admin")
				return
			}
			if !session.HasPermission(models.RoleSuperAdmin) {
				respondError(c, apperr.Forbidden("Only a super admin can change roles"), "")
				return
			}
			updates["role"] = *input.Role
		}
		if input.IsActive != nil {
			if !*input.IsActive && session.User() != nil && session.User().ID == id {
				badRequest(c, "You cannot deactivate your own account")
				return
			}
			updates["is_active"] = *input.IsActive
		}

		demoted := input.Role != nil && *input.Role != models.RoleSuperAdmin
		deactivated := input.IsActive != nil && !*input.IsActive
		if (demoted || deactivated) && !keepsSuperAdmin(c, db, target) {
			return
		}

		user, err := database.UpdateAdminUser(c.Request.Context(), db, id, updates)
		if err != nil {
			respondError(c, err, "admin user")
			return
		}
		c.JSON(200, gin.H{"user": user})
	}
}

func DeleteAdminUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if current := auth.SessionFrom(c).User(); current != nil && current.ID == id {
			badRequest(c, "You cannot delete your own account")
			return
		}
		target, ok := managedUser(c, db, id)
		if !ok {
			return
		}
		if !keepsSuperAdmin(c, db, target) {
			return
		}

		if err := database.DeleteAdminUser(c.Request.Context(), db, id); err != nil {
			respondError(c, err, "admin user")
			return
		}
		c.JSON(200, gin.H{"message": "User deleted successfully"})
	}
}
