package database

import (
	"context"
	"time"

	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"gorm.io/gorm"
)

func ListAdminUsers(ctx context.Context, db *gorm.DB) ([]models.AdminUser, error) {
	users := []models.AdminUser{}
	if err := db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func GetAdminUser(ctx context.Context, db *gorm.DB, id uint) (*models.AdminUser, error) {
	return getByID[models.AdminUser](ctx, db, id)
}

// GetAdminUserByEmail looks the user up by normalized email.
func GetAdminUserByEmail(ctx context.Context, db *gorm.DB, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateAdminUser(ctx context.Context, db *gorm.DB, user *models.AdminUser) (*models.AdminUser, error) {
	return create(ctx, db, user)
}

func UpdateAdminUser(ctx context.Context, db *gorm.DB, id uint, updates map[string]interface{}) (*models.AdminUser, error) {
	return updateByID[models.AdminUser](ctx, db, id, updates)
}

func DeleteAdminUser(ctx context.Context, db *gorm.DB, id uint) error {
	return deleteByID[models.AdminUser](ctx, db, id)
}

func TouchLastLogin(ctx context.Context, db *gorm.DB, id uint, at time.Time) error {
	return db.WithContext(ctx).Model(&models.AdminUser{}).Where("id = ?", id).Update("last_login", at).Error
}

// CountActiveAdminUsers counts active accounts holding role.
func CountActiveAdminUsers(ctx context.Context, db *gorm.DB, role models.Role) (int64, error) {
	return count[models.AdminUser](ctx, db, func(q *gorm.DB) *gorm.DB {
		return q.Where("role = ? AND is_active = ?", role, true)
	})
}
