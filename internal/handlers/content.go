package handlers

import (
	"strings"
	"time"

	"github.com/chachabrian/umrah-travel-backend/internal/database"
	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Gallery

type GalleryInput struct {
	Title       *string `json:"title"`
	ImageURL    *string `json:"imageUrl"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

func (in GalleryInput) updates() (map[string]interface{}, string) {
	updates := map[string]interface{}{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, "title is required"
		}
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.ImageURL != nil {
		if strings.TrimSpace(*in.ImageURL) == "" {
			return nil, "imageUrl is required"
		}
		updates["image_url"] = *in.ImageURL
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Category != nil {
		updates["category"] = strings.TrimSpace(*in.Category)
	}
	return updates, ""
}

func ListGallery(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := database.ListGalleryItems(c.Request.Context(), db, c.Query("category"))
		if err != nil {
			respondError(c, err, "gallery item")
			return
		}
		c.JSON(200, gin.H{"items": items})
	}
}

func GetGalleryItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		item, err := database.GetGalleryItem(c.Request.Context(), db, id)
		if err != nil {
			respondError(c, err, "gallery item")
			return
		}
		c.JSON(200, gin.H{"item": item})
	}
}

func CreateGalleryItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input GalleryInput
		if !bindJSON(c, &input) {
			return
		}
		if input.Title == nil || input.ImageURL == nil {
			badRequest(c, "title and imageUrl are required")
			return
		}
		if _, msg := input.updates(); msg != "" {
			badRequest(c, msg)
			return
		}

		item := &models.GalleryItem{
			Title:    strings.TrimSpace(*input.Title),
			ImageURL: *input.ImageURL,
		}
		if input.Description != nil {
			item.Description = *input.Description
		}
		if input.Category != nil {
			item.Category = strings.TrimSpace(*input.Category)
		}

		created, err := database.CreateGalleryItem(c.Request.Context(), db, item)
		if err != nil {
			respondError(c, err, "gallery item")
			return
		}
		c.JSON(201, gin.H{"item": created})
	}
}

func UpdateGalleryItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var input GalleryInput
		if !bindJSON(c, &input) {
			return
		}
		updates, msg := input.updates()
		if msg != "" {
			badRequest(c, msg)
			return
		}

		item, err := database.UpdateGalleryItem(c.Request.Context(), db, id, updates)
		if err != nil {
			respondError(c, err, "gallery item")
			return
		}
		c.JSON(200, gin.H{"item": item})
	}
}

func DeleteGalleryItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if err := database.DeleteGalleryItem(c.Request.Context(), db, id); err != nil {
			respondError(c, err, "gallery item")
			return
		}
		c.JSON(200, gin.H{"message": "Gallery item deleted successfully"})
	}
}

// Testimonials

type TestimonialInput struct {
	CustomerName *string `json:"customerName"`
	Rating       *int    `json:"rating"`
	TripID       *uint   `json:"tripId"`
	Date         *string `json:"date"`
	Comment      *string `json:"comment"`
}

func (in TestimonialInput) updates() (map[string]interface{}, string) {
	updates := map[string]interface{}{}
	if in.CustomerName != nil {
		if strings.TrimSpace(*in.CustomerName) == "" {
			return nil, "customerName is required"
		}
		updates["customer_name"] = strings.TrimSpace(*in.CustomerName)
	}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, "rating must be between 1 and 5"
		}
		updates["rating"] = *in.Rating
	}
	if in.TripID != nil {
		if *in.TripID == 0 {
			updates["trip_id"] = nil
		} else {
			updates["trip_id"] = *in.TripID
		}
	}
	if in.Date != nil {
		d, err := parseDate(*in.Date)
		if err != nil {
			return nil, "date must be YYYY-MM-DD"
		}
		updates["date"] = d
	}
	if in.Comment != nil {
		updates["comment"] = *in.Comment
	}
	return updates, ""
}

func ListTestimonials(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		testimonials, err := database.ListTestimonials(c.Request.Context(), db)
		if err != nil {
			respondError(c, err, "testimonial")
			return
		}
		c.JSON(200, gin.H{"testimonials": testimonials})
	}
}

func GetTestimonial(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		t, err := database.GetTestimonial(c.Request.Context(), db, id)
		if err != nil {
			respondError(c, err, "testimonial")
			return
		}
		c.JSON(200, gin.H{"testimonial": t})
	}
}

func CreateTestimonial(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TestimonialInput
		if !bindJSON(c, &input) {
			return
		}
		if input.CustomerName == nil || input.Rating == nil || input.Comment == nil {
			badRequest(c, "customerName, rating and comment are required")
			return
		}
		updates, msg := input.updates()
		if msg != "" {
			badRequest(c, msg)
			return
		}

		t := &models.Testimonial{
			CustomerName: updates["customer_name"].(string),
			Rating:       *input.Rating,
			Comment:      *input.Comment,
			Date:         time.Now().Truncate(24 * time.Hour),
		}
		if d, ok := updates["date"].(time.Time); ok {
			t.Date = d
		}
		if id, ok := updates["trip_id"].(uint); ok {
			t.TripID = &id
		}

		created, err := database.CreateTestimonial(c.Request.Context(), db, t)
		if err != nil {
			respondError(c, err, "testimonial")
			return
		}
		c.JSON(201, gin.H{"testimonial": created})
	}
}

func UpdateTestimonial(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var input TestimonialInput
		if !bindJSON(c, &input) {
			return
		}
		updates, msg := input.updates()
		if msg != "" {
			badRequest(c, msg)
			return
		}

		t, err := database.UpdateTestimonial(c.Request.Context(), db, id, updates)
		if err != nil {
			respondError(c, err, "testimonial")
			return
		}
		c.JSON(200, gin.H{"testimonial": t})
	}
}

func DeleteTestimonial(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if err := database.DeleteTestimonial(c.Request.Context(), db, id); err != nil {
			respondError(c, err, "testimonial")
			return
		}
		c.JSON(200, gin.H{"message": "Testimonial deleted successfully"})
	}
}

// Services

type ServiceInput struct {
	Icon        *string `json:"icon"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (in ServiceInput) updates() (map[string]interface{}, string) {
	updates := map[string]interface{}{}
	if in.Icon != nil {
		updates["icon"] = *in.Icon
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, "title is required"
		}
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	return updates, ""
}

func ListServices(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := database.ListServices(c.Request.Context(), db)
		if err != nil {
			respondError(c, err, "service")
			return
		}
		c.JSON(200, gin.H{"services": list})
	}
}

func GetService(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		svc, err := database.GetService(c.Request.Context(), db, id)
		if err != nil {
			respondError(c, err, "service")
			return
		}
		c.JSON(200, gin.H{"service": svc})
	}
}

func CreateService(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ServiceInput
		if !bindJSON(c, &input) {
			return
		}
		if input.Title == nil {
			badRequest(c, "title is required")
			return
		}
		if _, msg := input.updates(); msg != "" {
			badRequest(c, msg)
			return
		}

		s := &models.Service{Title: strings.TrimSpace(*input.Title)}
		if input.Icon != nil {
			s.Icon = *input.Icon
		}
		if input.Description != nil {
			s.Description = *input.Description
		}

		created, err := database.CreateService(c.Request.Context(), db, s)
		if err != nil {
			respondError(c, err, "service")
			return
		}
		c.JSON(201, gin.H{"service": created})
	}
}

func UpdateService(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var input ServiceInput
		if !bindJSON(c, &input) {
			return
		}
		updates, msg := input.updates()
		if msg != "" {
			badRequest(c, msg)
			return
		}

		s, err := database.UpdateService(c.Request.Context(), db, id, updates)
		if err != nil {
			respondError(c, err, "service")
			return
		}
		c.JSON(200, gin.H{"service": s})
	}
}

func DeleteService(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if err := database.DeleteService(c.Request.Context(), db, id); err != nil {
			respondError(c, err, "service")
			return
		}
		c.JSON(200, gin.H{"message": "Service deleted successfully"})
	}
}
