package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/chachabrian/umrah-travel-backend/internal/apperr"
	"github.com/chachabrian/umrah-travel-backend/internal/auth"
	"github.com/chachabrian/umrah-travel-backend/internal/database"
	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"github.com/chachabrian/umrah-travel-backend/internal/services"
	"github.com/chachabrian/umrah-travel-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func abort(c *gin.Context, err *apperr.Error) {
	c.AbortWithStatusJSON(apperr.HTTPStatus(err.Kind), gin.H{"error": err.Message, "kind": err.Kind})
}

// BearerToken returns the token from the Authorization header or the
// token query parameter.
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	// WebSocket clients cannot set headers from the browser
	return c.Query("token")
}

// AdminAuth resolves the bearer token into an authenticated session and
// attaches it to the request. Revoked tokens and inactive or deleted
// users end in the unauthenticated state.
func AdminAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := auth.NewSession()
		auth.SetSession(c, session)
		session.Begin()

		reject := func(message string) {
			session.Reject()
			abort(c, apperr.Unauthorized(message))
		}

		tokenString := BearerToken(c)
		if tokenString == "" {
			reject("Authorization header or token query parameter required")
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			reject("Invalid token")
			return
		}

		revoked, err := services.IsTokenRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			log.Printf("Error checking token revocation: %v", err)
		}
		if revoked {
			reject("Session has ended")
			return
		}

		user, err := database.GetAdminUser(c.Request.Context(), db, claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				reject("Invalid token")
				return
			}
			log.Printf("Error loading admin user %d: %v", claims.UserID, err)
			session.Reject()
			abort(c, apperr.FromDB(err, "admin user"))
			return
		}
		if !user.IsActive {
			reject("Account is disabled")
			return
		}

		if err := session.Authenticate(user, claims.ID); err != nil {
			log.Printf("Error authenticating session: %v", err)
			abort(c, apperr.Unauthorized("Invalid token"))
			return
		}
		c.Next()
	}
}

// RequireRole rejects requests whose session user ranks below role.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := auth.SessionFrom(c)
		if session.State() != auth.StateAuthenticated {
			abort(c, apperr.Unauthorized("Authentication required"))
			return
		}
		if !session.HasPermission(role) {
			abort(c, apperr.Forbidden("Insufficient permissions"))
			return
		}
		c.Next()
	}
}
