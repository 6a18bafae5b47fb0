package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/chachabrian/umrah-travel-backend/internal/apperr"
	"github.com/chachabrian/umrah-travel-backend/internal/auth"
	"github.com/chachabrian/umrah-travel-backend/internal/database"
	"github.com/chachabrian/umrah-travel-backend/internal/middleware"
	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"github.com/chachabrian/umrah-travel-backend/internal/services"
	"github.com/chachabrian/umrah-travel-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if !bindJSON(c, &input) {
			return
		}
		if !allowSubmission(c, "login") {
			return
		}

		ctx := c.Request.Context()
		user, err := database.GetAdminUserByEmail(ctx, db, input.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, apperr.Unauthorized("Invalid credentials"), "")
				return
			}
			respondError(c, err, "admin user")
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			respondError(c, apperr.Unauthorized("Invalid credentials"), "")
			return
		}
		if !user.IsActive {
			respondError(c, apperr.Forbidden("Account is disabled"), "")
			return
		}

		now := time.Now()
		token, claims, err := utils.GenerateToken(user, now)
		if err != nil {
			log.Printf("Error signing token for %s: %v", user.Email, err)
			respondError(c, err, "session")
			return
		}

		if err := database.TouchLastLogin(ctx, db, user.ID, now); err != nil {
			log.Printf("Error updating last login for %s: %v", user.Email, err)
		} else {
			user.LastLogin = &now
		}

		c.JSON(200, gin.H{
			"token":     token,
			"expiresAt": claims.ExpiresAt.Time,
			"user":      user,
		})
	}
}

// GetSession reports the state of the caller's session and its user.
func GetSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := auth.SessionFrom(c)
		c.JSON(200, gin.H{
			"state": session.State(),
			"user":  session.User(),
		})
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := auth.SessionFrom(c)
		tokenID := session.TokenID()

		claims, err := utils.ValidateToken(middleware.BearerToken(c))
		expiresAt := time.Now().Add(utils.TokenLifetime)
		if err == nil && claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}

		if err := services.RevokeToken(c.Request.Context(), tokenID, expiresAt); err != nil {
			respondError(c, err, "session")
			return
		}
		if err := session.End(); err != nil {
			log.Printf("Error ending session: %v", err)
		}

		c.JSON(200, gin.H{"message": "Logged out successfully"})
	}
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword emails a reset code. The response is the same whether or
// not the address belongs to an admin.
func ForgotPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ForgotPasswordInput
		if !bindJSON(c, &input) {
			return
		}
		if !allowSubmission(c, "forgot-password") {
			return
		}

		const message = "If the email is registered, a reset code has been sent"
		ctx := c.Request.Context()

		user, err := database.GetAdminUserByEmail(ctx, db, input.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(200, gin.H{"message": message})
				return
			}
			respondError(c, err, "admin user")
			return
		}
		if !user.IsActive {
			c.JSON(200, gin.H{"message": message})
			return
		}

		now := time.Now()
		uniqueKey := fmt.Sprintf("%s-reset-%s", user.Email, now.Format("20060102150405.000000000"))
		code := utils.GenerateOTP(uniqueKey)

		_, err = database.CreateOTP(ctx, db, &models.OTP{
			AdminUserID: user.ID,
			Code:        code,
			Type:        models.OTPTypePasswordReset,
			ExpiresAt:   now.Add(utils.OTPExpiration),
		})
		if err != nil {
			respondError(c, err, "reset code")
			return
		}

		if err := utils.SendPasswordResetEmail(user.Email, code); err != nil {
			log.Printf("Error sending password reset email to %s: %v", user.Email, err)
			respondError(c, apperr.New(apperr.KindUnavailable, "Failed to send reset email"), "")
			return
		}

		c.JSON(200, gin.H{"message": message})
	}
}

type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=4"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ResetPassword sets a new password with an emailed code. Each wrong code
// counts against the active one until it is burned.
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ResetPasswordInput
		if !bindJSON(c, &input) {
			return
		}
		if !allowSubmission(c, "reset-password") {
			return
		}

		ctx := c.Request.Context()
		invalid := apperr.Validation("Invalid or expired code")

		user, err := database.GetAdminUserByEmail(ctx, db, input.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, invalid, "")
				return
			}
			respondError(c, err, "admin user")
			return
		}

		otp, err := database.VerifyOTP(ctx, db, user.ID, input.OTP, models.OTPTypePasswordReset, time.Now(), utils.MaxOTPAttempts)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, invalid, "")
				return
			}
			respondError(c, err, "reset code")
			return
		}

		user.Password = input.NewPassword
		if err := user.HashPassword(); err != nil {
			respondError(c, err, "password")
			return
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := otp.MarkAsUsed(tx); err != nil {
				return err
			}
			_, err := database.UpdateAdminUser(ctx, tx, user.ID, map[string]interface{}{"password_hash": user.PasswordHash})
			return err
		})
		if err != nil {
			respondError(c, err, "admin user")
			return
		}

		c.JSON(200, gin.H{"message": "Password has been reset"})
	}
}

type UpdatePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

func UpdatePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdatePasswordInput
		if !bindJSON(c, &input) {
			return
		}
		if input.NewPassword != input.ConfirmPassword {
			badRequest(c, "Passwords do not match")
			return
		}

		user := auth.SessionFrom(c).User()
		if user == nil {
			respondError(c, apperr.Unauthorized("Authentication required"), "")
			return
		}
		if err := user.CheckPassword(input.CurrentPassword); err != nil {
			badRequest(c, "Current password is incorrect")
			return
		}

		updated := models.AdminUser{Password: input.NewPassword}
		if err := updated.HashPassword(); err != nil {
			respondError(c, err, "password")
			return
		}
		if _, err := database.UpdateAdminUser(c.Request.Context(), db, user.ID, map[string]interface{}{"password_hash": updated.PasswordHash}); err != nil {
			respondError(c, err, "admin user")
			return
		}

		c.JSON(200, gin.H{"message": "Password updated successfully"})
	}
}
