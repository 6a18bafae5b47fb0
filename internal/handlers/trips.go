package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/chachabrian/umrah-travel-backend/internal/apperr"
	"github.com/chachabrian/umrah-travel-backend/internal/database"
	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"github.com/chachabrian/umrah-travel-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TripResponse is a trip annotated with its effective category.
type TripResponse struct {
	models.Trip
	Category        models.TripCategory `json:"category"`
	DescriptionHTML string              `json:"descriptionHtml,omitempty"`
}

func tripResponses(trips []models.Trip, today time.Time) []TripResponse {
	out := make([]TripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, TripResponse{Trip: t, Category: utils.ClassifyTrip(t, today)})
	}
	return out
}

func listTrips(db *gorm.DB, activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := utils.ParseTripFilter(c.Query("filter"))
		if err != nil {
			badRequest(c, err.Error())
			return
		}

		trips, err := database.ListTrips(c.Request.Context(), db, database.TripQuery{ActiveOnly: activeOnly})
		if err != nil {
			respondError(c, err, "trip")
			return
		}

		today := time.Now()
		c.JSON(200, gin.H{"trips": tripResponses(utils.FilterTrips(trips, filter, today), today)})
	}
}

// ListPublicTrips lists active trips for the public site.
func ListPublicTrips(db *gorm.DB) gin.HandlerFunc {
	return listTrips(db, true)
}

// ListTrips lists every trip, active or not, for the admin panel.
func ListTrips(db *gorm.DB) gin.HandlerFunc {
	return listTrips(db, false)
}

// GetPublicTrip returns an active trip with its description rendered to
// HTML. Inactive trips are reported as missing.
func GetPublicTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		trip, err := database.GetTrip(c.Request.Context(), db, id)
		if err != nil {
			respondError(c, err, "trip")
			return
		}
		if !trip.IsActive {
			respondError(c, apperr.NotFound("trip not found"), "trip")
			return
		}

		resp := TripResponse{Trip: *trip, Category: utils.ClassifyTrip(*trip, time.Now())}
		if html, err := utils.RenderMarkdown(trip.Description); err != nil {
			log.Printf("Error rendering description of trip %d: %v", trip.ID, err)
		} else {
			resp.DescriptionHTML = html
		}

		c.JSON(200, gin.H{"trip": resp})
	}
}

func GetTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		trip, err := database.GetTrip(c.Request.Context(), db, id)
		if err != nil {
			respondError(c, err, "trip")
			return
		}

		c.JSON(200, gin.H{"trip": TripResponse{Trip: *trip, Category: utils.ClassifyTrip(*trip, time.Now())}})
	}
}

// TripInput is shared by create and update; update only applies the
// fields that are present.
type TripInput struct {
	Title          *string  `json:"title"`
	Destination    *string  `json:"destination"`
	StartDate      *string  `json:"startDate"`
	EndDate        *string  `json:"endDate"`
	Duration       *string  `json:"duration"`
	Price          *float64 `json:"price"`
	ImageURL       *string  `json:"imageUrl"`
	Description    *string  `json:"description"`
	IsActive       *bool    `json:"isActive"`
	AvailableSlots *int     `json:"availableSlots"`
	Category       *string  `json:"category"`
}

var errTripDates = errors.New("endDate must not be before startDate")

// updates validates the input and converts it to column updates. existing
// supplies the stored dates when only one side of the range changes.
func (in TripInput) updates(existing *models.Trip) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, errors.New("title is required")
		}
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Destination != nil {
		if strings.TrimSpace(*in.Destination) == "" {
			return nil, errors.New("destination is required")
		}
		updates["destination"] = strings.TrimSpace(*in.Destination)
	}

	var start, end time.Time
	if existing != nil {
		start, end = existing.StartDate, existing.EndDate
	}
	if in.StartDate != nil {
		d, err := parseDate(*in.StartDate)
		if err != nil {
			return nil, errors.New("startDate must be YYYY-MM-DD")
		}
		start = d
		updates["start_date"] = d
	}
	if in.EndDate != nil {
		d, err := parseDate(*in.EndDate)
		if err != nil {
			return nil, errors.New("endDate must be YYYY-MM-DD")
		}
		end = d
		updates["end_date"] = d
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return nil, errTripDates
	}

	if in.Duration != nil {
		updates["duration"] = *in.Duration
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, errors.New("price must not be negative")
		}
		updates["price"] = *in.Price
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if in.AvailableSlots != nil {
		if *in.AvailableSlots < 0 {
			return nil, errors.New("availableSlots must not be negative")
		}
		updates["available_slots"] = *in.AvailableSlots
	}
	if in.Category != nil {
		if *in.Category == "" {
			updates["category"] = nil
		} else {
			category := models.TripCategory(*in.Category)
			if !category.Valid() {
				return nil, errors.New("category must be upcoming or past")
			}
			updates["category"] = category
		}
	}
	return updates, nil
}

func CreateTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TripInput
		if !bindJSON(c, &input) {
			return
		}
		if input.Title == nil || input.Destination == nil || input.StartDate == nil ||
			input.EndDate == nil || input.Price == nil {
			badRequest(c, "title, destination, startDate, endDate and price are required")
			return
		}

		updates, err := input.updates(nil)
		if err != nil {
			badRequest(c, err.Error())
			return
		}

		trip := &models.Trip{IsActive: true}
		if input.IsActive != nil {
			trip.IsActive = *input.IsActive
		}
		applyTripUpdates(trip, updates)

		created, err := database.CreateTrip(c.Request.Context(), db, trip)
		if err != nil {
			respondError(c, err, "trip")
			return
		}
		c.JSON(201, gin.H{"trip": created})
	}
}

func applyTripUpdates(trip *models.Trip, updates map[string]interface{}) {
	for column, value := range updates {
		switch column {
		case "title":
			trip.Title = value.(string)
		case "destination":
			trip.Destination = value.(string)
		case "start_date":
			trip.StartDate = value.(time.Time)
		case "end_date":
			trip.EndDate = value.(time.Time)
		case "duration":
			trip.Duration = value.(string)
		case "price":
			trip.Price = value.(float64)
		case "image_url":
			trip.ImageURL = value.(string)
		case "description":
			trip.Description = value.(string)
		case "available_slots":
			trip.AvailableSlots = value.(int)
		case "category":
			if category, ok := value.(models.TripCategory); ok {
				trip.Category = &category
			}
		}
	}
}

func UpdateTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var input TripInput
		if !bindJSON(c, &input) {
			return
		}

		ctx := c.Request.Context()
		existing, err := database.GetTrip(ctx, db, id)
		if err != nil {
			respondError(c, err, "trip")
			return
		}

		updates, err := input.updates(existing)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		if len(updates) == 0 {
			c.JSON(200, gin.H{"trip": existing})
			return
		}

		trip, err := database.UpdateTrip(ctx, db, id, updates)
		if err != nil {
			respondError(c, err, "trip")
			return
		}
		c.JSON(200, gin.H{"trip": trip})
	}
}

func DeleteTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if err := database.DeleteTrip(c.Request.Context(), db, id); err != nil {
			respondError(c, err, "trip")
			return
		}
		c.JSON(200, gin.H{"message": "Trip deleted successfully"})
	}
}
