package handlers

import (
	"github.com/chachabrian/umrah-travel-backend/internal/apperr"
	"github.com/chachabrian/umrah-travel-backend/internal/auth"
	"github.com/chachabrian/umrah-travel-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// WebSocketHandler upgrades an authenticated admin to the live event stream
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.SessionFrom(c).User()
		if user == nil {
			respondError(c, apperr.Unauthorized("Authentication required"), "")
			return
		}

		services.HandleWebSocket(hub, c.Writer, c.Request, user.ID, string(user.Role))
	}
}
