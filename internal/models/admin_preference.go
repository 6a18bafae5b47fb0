package models

import (
	"time"
)

// AdminPreference holds per-user admin panel settings
type AdminPreference struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AdminUserID uint      `gorm:"uniqueIndex;not null" json:"adminUserId"`
	AdminUser   AdminUser `gorm:"foreignKey:AdminUserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	DarkMode bool `gorm:"column:dark_mode;default:false" json:"darkMode"`

	// Alerts for new bookings and contact messages
	BookingAlerts bool `gorm:"column:booking_alerts;default:true" json:"bookingAlerts"`
	EmailEnabled  bool `gorm:"column:email_enabled;default:true" json:"emailEnabled"`
}

// TableName specifies the table name for AdminPreference
func (AdminPreference) TableName() string {
	return "admin_preferences"
}

// DefaultPreferences returns default preferences for a new admin user
func DefaultPreferences(adminUserID uint) *AdminPreference {
	return &AdminPreference{
		AdminUserID:   adminUserID,
		DarkMode:      false,
		BookingAlerts: true,
		EmailEnabled:  true,
	}
}
