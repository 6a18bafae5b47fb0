package models

import (
	"time"

	"gorm.io/gorm"
)

// OTPType defines the purpose of the OTP
type OTPType string

const (
	OTPTypePasswordReset OTPType = "password_reset"
)

// OTP stores a one-time code sent to an admin user
type OTP struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	AdminUserID    uint      `json:"adminUserId" gorm:"index;not null"`
	Code           string    `json:"code"`
	Type           OTPType   `json:"type"`
	ExpiresAt      time.Time `json:"expiresAt"`
	Used           bool      `json:"used" gorm:"default:false"`
	FailedAttempts int       `json:"failedAttempts" gorm:"not null;default:0"`
}

func (OTP) TableName() string {
	return "otps"
}

// IsValid checks if the OTP is valid (not expired and not used)
func (o *OTP) IsValid(now time.Time) bool {
	return !o.Used && now.Before(o.ExpiresAt)
}

// MarkAsUsed marks the OTP as used
func (o *OTP) MarkAsUsed(db *gorm.DB) error {
	o.Used = true
	return db.Model(o).Update("used", true).Error
}
