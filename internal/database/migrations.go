package database

import (
	"errors"
	"log"
	"os"

	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Trip{},
		&models.Booking{},
		&models.GalleryItem{},
		&models.Testimonial{},
		&models.Service{},
		&models.AdminUser{},
		&models.ContactMessage{},
		&models.OTP{},
		&models.AdminPreference{},
	)
	if err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
		db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('pending', 'confirmed', 'cancelled'))`)
		db.Exec(`ALTER TABLE admin_users DROP CONSTRAINT IF EXISTS admin_users_role_check`)
		db.Exec(`ALTER TABLE admin_users ADD CONSTRAINT admin_users_role_check CHECK (role IN ('editor', 'admin', 'super_admin'))`)
		db.Exec(`ALTER TABLE testimonials DROP CONSTRAINT IF EXISTS testimonials_rating_check`)
		db.Exec(`ALTER TABLE testimonials ADD CONSTRAINT testimonials_rating_check CHECK (rating BETWEEN 1 AND 5)`)
	}

	return seedSuperAdmin(db)
}

// seedSuperAdmin creates the first super_admin when the admin table is
// empty and SUPER_ADMIN_EMAIL/SUPER_ADMIN_PASSWORD are set.
func seedSuperAdmin(db *gorm.DB) error {
	email := models.NormalizeEmail(os.Getenv("SUPER_ADMIN_EMAIL"))
	password := os.Getenv("SUPER_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	user := models.AdminUser{
		Username: "superadmin",
		Email:    email,
		FullName: "Super Admin",
		Password: password,
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}
	if err := user.HashPassword(); err != nil {
		return err
	}
	if err := db.Create(&user).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}

	log.Printf("Seeded super admin %s", email)
	return nil
}
