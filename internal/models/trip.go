package models

import (
	"time"
)

type TripCategory string

const (
	TripCategoryUpcoming TripCategory = "upcoming"
	TripCategoryPast     TripCategory = "past"
)

// Valid reports whether c is one of the known categories.
func (c TripCategory) Valid() bool {
	return c == TripCategoryUpcoming || c == TripCategoryPast
}

// Trip is a sellable pilgrimage package.
type Trip struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	Title          string        `json:"title" gorm:"not null"`
	Destination    string        `json:"destination" gorm:"not null"`
	StartDate      time.Time     `json:"startDate" gorm:"type:date"`
	EndDate        time.Time     `json:"endDate" gorm:"type:date"`
	Duration       string        `json:"duration"`
	Price          float64       `json:"price" gorm:"not null"`
	ImageURL       string        `json:"imageUrl" gorm:"column:image_url"`
	Description    string        `json:"description" gorm:"type:text"`
	IsActive       bool          `json:"isActive" gorm:"not null"`
	AvailableSlots int           `json:"availableSlots" gorm:"not null;default:0"`
	Category       *TripCategory `json:"category,omitempty"`
}

// TableName specifies the table name
func (Trip) TableName() string {
	return "trips"
}
