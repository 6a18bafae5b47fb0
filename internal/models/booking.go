package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a customer's request to reserve a trip. TotalPrice is a
// snapshot of the trip price at creation and is never recomputed.
type Booking struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
	TripID            *uint         `json:"tripId" gorm:"index"`
	Trip              *Trip         `json:"trip,omitempty" gorm:"foreignKey:TripID;constraint:OnDelete:SET NULL"`
	CustomerName      string        `json:"customerName" gorm:"not null"`
	CustomerEmail     string        `json:"customerEmail" gorm:"not null"`
	CustomerPhone     string        `json:"customerPhone" gorm:"not null"`
	NumberOfTravelers int           `json:"numberOfTravelers" gorm:"not null;default:1"`
	BookingDate       time.Time     `json:"bookingDate"`
	SpecialRequests   string        `json:"specialRequests" gorm:"type:text"`
	Status            BookingStatus `json:"status" gorm:"not null;default:'pending'"`
	TotalPrice        float64       `json:"totalPrice" gorm:"not null"`
}

// TableName specifies the table name
func (Booking) TableName() string {
	return "bookings"
}
