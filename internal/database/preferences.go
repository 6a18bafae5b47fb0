package database

import (
	"context"
	"errors"

	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"gorm.io/gorm"
)

// GetOrCreatePreferences returns the user's preferences, creating the
// defaults on first access.
func GetOrCreatePreferences(ctx context.Context, db *gorm.DB, adminUserID uint) (*models.AdminPreference, error) {
	var prefs models.AdminPreference
	err := db.WithContext(ctx).Where("admin_user_id = ?", adminUserID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := models.DefaultPreferences(adminUserID)
		if err := db.WithContext(ctx).Create(defaults).Error; err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

func SavePreferences(ctx context.Context, db *gorm.DB, prefs *models.AdminPreference) (*models.AdminPreference, error) {
	if err := db.WithContext(ctx).Save(prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}

// ListAlertEmails returns the addresses of active admins who want booking
// and contact alerts by email. Admins without stored preferences get the
// defaults, which include email alerts.
func ListAlertEmails(ctx context.Context, db *gorm.DB) ([]string, error) {
	emails := []string{}
	err := db.WithContext(ctx).
		Model(&models.AdminUser{}).
		Joins("LEFT JOIN admin_preferences ON admin_preferences.admin_user_id = admin_users.id").
		Where("admin_users.is_active = ?", true).
		Where("admin_preferences.id IS NULL OR (admin_preferences.booking_alerts = ? AND admin_preferences.email_enabled = ?)", true, true).
		Order("admin_users.id ASC").
		Pluck("admin_users.email", &emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}
