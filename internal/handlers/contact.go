package handlers

import (
	"strings"

	"github.com/chachabrian/umrah-travel-backend/internal/database"
	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"github.com/chachabrian/umrah-travel-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

func SubmitContactMessage(db *gorm.DB, notifier *services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ContactInput
		if !bindJSON(c, &input) {
			return
		}
		if strings.TrimSpace(input.Message) == "" {
			badRequest(c, "message is required")
			return
		}
		if !allowSubmission(c, "contact") {
			return
		}

		msg, err := database.CreateContactMessage(c.Request.Context(), db, &models.ContactMessage{
			Name:    strings.TrimSpace(input.Name),
			Email:   strings.TrimSpace(input.Email),
			Phone:   strings.TrimSpace(input.Phone),
			Subject: strings.TrimSpace(input.Subject),
			Message: strings.TrimSpace(input.Message),
		})
		if err != nil {
			respondError(c, err, "message")
			return
		}

		notifier.NewContactMessage(msg)
		c.JSON(201, gin.H{"message": "Thank you, we will get back to you soon"})
	}
}

func ListContactMessages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		messages, err := database.ListContactMessages(c.Request.Context(), db)
		if err != nil {
			respondError(c, err, "message")
			return
		}
		c.JSON(200, gin.H{"messages": messages})
	}
}

func MarkContactMessageRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		msg, err := database.MarkContactMessageRead(c.Request.Context(), db, id)
		if err != nil {
			respondError(c, err, "message")
			return
		}
		c.JSON(200, gin.H{"message": msg})
	}
}

func DeleteContactMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if err := database.DeleteContactMessage(c.Request.Context(), db, id); err != nil {
			respondError(c, err, "message")
			return
		}
		c.JSON(200, gin.H{"message": "Message deleted successfully"})
	}
}
