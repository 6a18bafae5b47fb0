package models

import (
	"time"
)

// GalleryItem is an image shown on the public gallery page
type GalleryItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Title       string    `json:"title" gorm:"not null"`
	ImageURL    string    `json:"imageUrl" gorm:"column:image_url;not null"`
	Description string    `json:"description"`
	Category    string    `json:"category" gorm:"index"`
}

func (GalleryItem) TableName() string {
	return "gallery"
}

// Testimonial is a customer review, optionally tied to a trip
type Testimonial struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	CustomerName string    `json:"customerName" gorm:"not null"`
	Rating       int       `json:"rating" gorm:"not null"`
	TripID       *uint     `json:"tripId"`
	Trip         *Trip     `json:"trip,omitempty" gorm:"foreignKey:TripID;constraint:OnDelete:SET NULL"`
	Date         time.Time `json:"date"`
	Comment      string    `json:"comment" gorm:"type:text"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}

// Service is an offering rendered on the home and services pages
type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Icon        string    `json:"icon"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
}

func (Service) TableName() string {
	return "services"
}

// ContactMessage is a submission from the public contact form
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	IsRead    bool      `json:"isRead" gorm:"not null;default:false"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
