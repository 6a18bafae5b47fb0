package handlers

import (
	"log"
	"time"

	"github.com/chachabrian/umrah-travel-backend/internal/apperr"
	"github.com/chachabrian/umrah-travel-backend/internal/database"
	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"github.com/chachabrian/umrah-travel-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	formSubmissionLimit  = 5
	formSubmissionWindow = 10 * time.Minute
)

func allowSubmission(c *gin.Context, form string) bool {
	if services.AllowSubmission(c.Request.Context(), form, c.ClientIP(), formSubmissionLimit, formSubmissionWindow) {
		return true
	}
	c.JSON(429, gin.H{"error": "Too many submissions, please try again later"})
	return false
}

// CreatePublicBooking records a booking request from the public site. The
// trip must exist and be active; the booking starts as pending with the
// current trip price.
func CreatePublicBooking(db *gorm.DB, notifier *services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form services.BookingForm
		if !bindJSON(c, &form) {
			return
		}
		if !allowSubmission(c, "booking") {
			return
		}

		ctx := c.Request.Context()
		trip, err := database.GetTrip(ctx, db, form.TripID)
		if err != nil {
			respondError(c, err, "trip")
			return
		}
		if !trip.IsActive {
			respondError(c, apperr.NotFound("trip not found"), "trip")
			return
		}

		booking, err := services.ComposeBooking(trip, form, time.Now())
		if err != nil {
			badRequest(c, err.Error())
			return
		}

		created, err := database.CreateBooking(ctx, db, booking)
		if err != nil {
			respondError(c, err, "booking")
			return
		}
		created.Trip = trip

		log.Printf("New booking %d for trip %d (%d travelers)", created.ID, trip.ID, created.NumberOfTravelers)
		notifier.NewBooking(created)

		c.JSON(201, gin.H{
			"message": "Booking submitted successfully",
			"booking": created,
		})
	}
}

func ListBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := database.BookingQuery{Status: models.BookingStatus(c.Query("status"))}
		bookings, err := database.ListBookings(c.Request.Context(), db, q)
		if err != nil {
			respondError(c, err, "booking")
			return
		}

		c.JSON(200, gin.H{"bookings": bookings})
	}
}

func GetBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		booking, err := database.GetBooking(c.Request.Context(), db, id)
		if err != nil {
			respondError(c, err, "booking")
			return
		}
		c.JSON(200, gin.H{"booking": booking})
	}
}

type UpdateBookingStatusInput struct {
	Status models.BookingStatus `json:"status" binding:"required,oneof=confirmed cancelled"`
}

func UpdateBookingStatus(db *gorm.DB, notifier *services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var input UpdateBookingStatusInput
		if !bindJSON(c, &input) {
			return
		}

		booking, err := database.UpdateBooking(c.Request.Context(), db, id, map[string]interface{}{"status": input.Status})
		if err != nil {
			respondError(c, err, "booking")
			return
		}

		notifier.BookingStatusChanged(booking)
		c.JSON(200, gin.H{"booking": booking})
	}
}

func DeleteBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if err := database.DeleteBooking(c.Request.Context(), db, id); err != nil {
			respondError(c, err, "booking")
			return
		}
		c.JSON(200, gin.H{"message": "Booking deleted successfully"})
	}
}

// ExportBookings streams every booking as an xlsx workbook.
func ExportBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := database.ListBookings(c.Request.Context(), db, database.BookingQuery{})
		if err != nil {
			respondError(c, err, "booking")
			return
		}

		f, err := services.BookingsWorkbook(bookings)
		if err != nil {
			respondError(c, err, "export")
			return
		}
		defer f.Close()

		buf, err := f.WriteToBuffer()
		if err != nil {
			respondError(c, err, "export")
			return
		}

		filename := services.BookingExportFilename(time.Now())
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}
