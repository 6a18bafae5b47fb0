package database

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"gorm.io/gorm"
)

// CreateOTP stores a new code and invalidates any unused codes of the same
// type for the user.
func CreateOTP(ctx context.Context, db *gorm.DB, otp *models.OTP) (*models.OTP, error) {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OTP{}).
			Where("admin_user_id = ? AND type = ? AND used = ?", otp.AdminUserID, otp.Type, false).
			Update("used", true).Error; err != nil {
			return err
		}
		return tx.Create(otp).Error
	})
	if err != nil {
		return nil, err
	}
	return otp, nil
}

// VerifyOTP checks code against the user's active code of the given type
// and returns it on a match. A wrong guess is counted on the active code,
// which is marked used once maxAttempts guesses have failed. A miss, like
// a missing code, is reported as gorm.ErrRecordNotFound.
func VerifyOTP(ctx context.Context, db *gorm.DB, adminUserID uint, code string, otpType models.OTPType, now time.Time, maxAttempts int) (*models.OTP, error) {
	var matched *models.OTP
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var otp models.OTP
		if err := tx.Where("admin_user_id = ? AND type = ? AND used = ? AND expires_at > ?",
			adminUserID, otpType, false, now).
			Order("created_at DESC").
			Order("id DESC").
			First(&otp).Error; err != nil {
			return err
		}

		if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(code)) == 1 {
			matched = &otp
			return nil
		}

		if err := tx.Model(&models.OTP{}).Where("id = ?", otp.ID).
			Update("failed_attempts", gorm.Expr("failed_attempts + ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&models.OTP{}).
			Where("id = ? AND failed_attempts >= ?", otp.ID, maxAttempts).
			Update("used", true).Error
	})
	if err != nil {
		return nil, err
	}
	if matched == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return matched, nil
}
