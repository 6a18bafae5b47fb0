package handlers

import (
	"context"

	"github.com/chachabrian/umrah-travel-backend/internal/apperr"
	"github.com/chachabrian/umrah-travel-backend/internal/database"
	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"github.com/chachabrian/umrah-travel-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func dashboardSources(db *gorm.DB) map[string]services.StatFunc {
	bind := func(fn func(context.Context, *gorm.DB) (int64, error)) services.StatFunc {
		return func(ctx context.Context) (int64, error) { return fn(ctx, db) }
	}
	return map[string]services.StatFunc{
		"trips":        bind(database.CountTrips),
		"bookings":     bind(database.CountBookings),
		"gallery":      bind(database.CountGalleryItems),
		"testimonials": bind(database.CountTestimonials),
		"services":     bind(database.CountServices),
		"pendingBookings": func(ctx context.Context) (int64, error) {
			return database.CountBookingsByStatus(ctx, db, models.BookingStatusPending)
		},
		"unreadMessages": bind(database.CountUnreadContactMessages),
	}
}

// Dashboard reports the admin overview counts. Each count succeeds or
// fails on its own.
func Dashboard(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, ok := services.CollectStats(c.Request.Context(), dashboardSources(db))
		if !ok {
			// client went away
			respondError(c, apperr.New(apperr.KindUnavailable, "request cancelled"), "")
			return
		}

		connected := 0
		if hub != nil {
			connected = hub.GetConnectedClients()
		}
		c.JSON(200, gin.H{
			"stats":           stats,
			"connectedAdmins": connected,
		})
	}
}
