package handlers

import (
	"github.com/chachabrian/umrah-travel-backend/internal/apperr"
	"github.com/chachabrian/umrah-travel-backend/internal/auth"
	"github.com/chachabrian/umrah-travel-backend/internal/database"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetPreferences returns the caller's preferences, creating defaults on
// first use.
func GetPreferences(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.SessionFrom(c).User()
		if user == nil {
			respondError(c, apperr.Unauthorized("Authentication required"), "")
			return
		}

		prefs, err := database.GetOrCreatePreferences(c.Request.Context(), db, user.ID)
		if err != nil {
			respondError(c, err, "preferences")
			return
		}
		c.JSON(200, gin.H{"preferences": prefs})
	}
}

type UpdatePreferencesInput struct {
	DarkMode      *bool `json:"darkMode"`
	BookingAlerts *bool `json:"bookingAlerts"`
	EmailEnabled  *bool `json:"emailEnabled"`
}

func UpdatePreferences(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.SessionFrom(c).User()
		if user == nil {
			respondError(c, apperr.Unauthorized("Authentication required"), "")
			return
		}
		var input UpdatePreferencesInput
		if !bindJSON(c, &input) {
			return
		}

		ctx := c.Request.Context()
		prefs, err := database.GetOrCreatePreferences(ctx, db, user.ID)
		if err != nil {
			respondError(c, err, "preferences")
			return
		}

		if input.DarkMode != nil {
			prefs.DarkMode = *input.DarkMode
		}
		if input.BookingAlerts != nil {
			prefs.BookingAlerts = *input.BookingAlerts
		}
		if input.EmailEnabled != nil {
			prefs.EmailEnabled = *input.EmailEnabled
		}

		prefs, err = database.SavePreferences(ctx, db, prefs)
		if err != nil {
			respondError(c, err, "preferences")
			return
		}
		c.JSON(200, gin.H{"preferences": prefs})
	}
}
