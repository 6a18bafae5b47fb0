package handlers

import (
	"github.com/chachabrian/umrah-travel-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type DeviceTokenInput struct {
	Token string `json:"token" binding:"required"`
}

// RegisterDeviceToken subscribes an admin device to booking and contact
// push alerts.
func RegisterDeviceToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input DeviceTokenInput
		if !bindJSON(c, &input) {
			return
		}
		if err := services.SubscribeToTopic(c.Request.Context(), []string{input.Token}, services.AdminAlertsTopic); err != nil {
			respondError(c, err, "device")
			return
		}
		c.JSON(200, gin.H{"message": "Device registered for alerts"})
	}
}

func UnregisterDeviceToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input DeviceTokenInput
		if !bindJSON(c, &input) {
			return
		}
		if err := services.UnsubscribeFromTopic(c.Request.Context(), []string{input.Token}, services.AdminAlertsTopic); err != nil {
			respondError(c, err, "device")
			return
		}
		c.JSON(200, gin.H{"message": "Device unregistered"})
	}
}
