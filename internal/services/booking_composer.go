package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chachabrian/umrah-travel-backend/internal/models"
)

var ErrTripNotFound = errors.New("trip not found")

// BookingForm is the public booking form. Fields without a column of
// their own are folded into Booking.SpecialRequests.
type BookingForm struct {
	TripID                uint   `json:"tripId" binding:"required"`
	Name                  string `json:"name" binding:"required"`
	Email                 string `json:"email" binding:"required,email"`
	Phone                 string `json:"phone" binding:"required"`
	NumberOfTravelers     int    `json:"numberOfTravelers" binding:"required,min=1"`
	DateOfBirth           string `json:"dateOfBirth" binding:"required"`
	PassportNumber        string `json:"passportNumber" binding:"required"`
	Address               string `json:"address" binding:"required"`
	EmergencyContactName  string `json:"emergencyContactName" binding:"required"`
	EmergencyContactPhone string `json:"emergencyContactPhone" binding:"required"`
	SpecialRequests       string `json:"specialRequests"`
}

// ComposeSpecialRequests joins the extra form fields in a fixed order,
// one per line. The free-text note comes last and only when present.
func ComposeSpecialRequests(form BookingForm) string {
	lines := []string{
		"Address: " + strings.TrimSpace(form.Address),
		"Date of Birth: " + strings.TrimSpace(form.DateOfBirth),
		"Passport Number: " + strings.TrimSpace(form.PassportNumber),
		fmt.Sprintf("Emergency Contact: %s (%s)",
			strings.TrimSpace(form.EmergencyContactName), strings.TrimSpace(form.EmergencyContactPhone)),
	}
	if note := strings.TrimSpace(form.SpecialRequests); note != "" {
		lines = append(lines, "Special Requests: "+note)
	}
	return strings.Join(lines, "\n")
}

// ComposeBooking builds the record persisted for a booking form. The
// total price is the trip price at this moment times the traveler count.
func ComposeBooking(trip *models.Trip, form BookingForm, now time.Time) (*models.Booking, error) {
	if trip == nil {
		return nil, ErrTripNotFound
	}
	if form.NumberOfTravelers < 1 {
		return nil, fmt.Errorf("number of travelers must be at least 1")
	}

	tripID := trip.ID
	return &models.Booking{
		TripID:            &tripID,
		CustomerName:      strings.TrimSpace(form.Name),
		CustomerEmail:     strings.TrimSpace(form.Email),
		CustomerPhone:     strings.TrimSpace(form.Phone),
		NumberOfTravelers: form.NumberOfTravelers,
		BookingDate:       now,
		SpecialRequests:   ComposeSpecialRequests(form),
		Status:            models.BookingStatusPending,
		TotalPrice:        trip.Price * float64(form.NumberOfTravelers),
	}, nil
}
