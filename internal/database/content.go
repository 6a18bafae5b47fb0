package database

import (
	"context"

	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"gorm.io/gorm"
)

// Gallery

func ListGalleryItems(ctx context.Context, db *gorm.DB, category string) ([]models.GalleryItem, error) {
	items := []models.GalleryItem{}
	query := db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func GetGalleryItem(ctx context.Context, db *gorm.DB, id uint) (*models.GalleryItem, error) {
	return getByID[models.GalleryItem](ctx, db, id)
}

func CreateGalleryItem(ctx context.Context, db *gorm.DB, item *models.GalleryItem) (*models.GalleryItem, error) {
	return create(ctx, db, item)
}

func UpdateGalleryItem(ctx context.Context, db *gorm.DB, id uint, updates map[string]interface{}) (*models.GalleryItem, error) {
	return updateByID[models.GalleryItem](ctx, db, id, updates)
}

func DeleteGalleryItem(ctx context.Context, db *gorm.DB, id uint) error {
	return deleteByID[models.GalleryItem](ctx, db, id)
}

func CountGalleryItems(ctx context.Context, db *gorm.DB) (int64, error) {
	return count[models.GalleryItem](ctx, db)
}

// Testimonials

func ListTestimonials(ctx context.Context, db *gorm.DB) ([]models.Testimonial, error) {
	testimonials := []models.Testimonial{}
	if err := db.WithContext(ctx).
		Preload("Trip").
		Order("date DESC").
		Order("id DESC").
		Find(&testimonials).Error; err != nil {
		return nil, err
	}
	return testimonials, nil
}

func GetTestimonial(ctx context.Context, db *gorm.DB, id uint) (*models.Testimonial, error) {
	return getByID[models.Testimonial](ctx, db, id, "Trip")
}

func CreateTestimonial(ctx context.Context, db *gorm.DB, t *models.Testimonial) (*models.Testimonial, error) {
	return create(ctx, db, t)
}

func UpdateTestimonial(ctx context.Context, db *gorm.DB, id uint, updates map[string]interface{}) (*models.Testimonial, error) {
	return updateByID[models.Testimonial](ctx, db, id, updates, "Trip")
}

func DeleteTestimonial(ctx context.Context, db *gorm.DB, id uint) error {
	return deleteByID[models.Testimonial](ctx, db, id)
}

func CountTestimonials(ctx context.Context, db *gorm.DB) (int64, error) {
	return count[models.Testimonial](ctx, db)
}

// Services

func ListServices(ctx context.Context, db *gorm.DB) ([]models.Service, error) {
	services := []models.Service{}
	if err := db.WithContext(ctx).Order("id ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func GetService(ctx context.Context, db *gorm.DB, id uint) (*models.Service, error) {
	return getByID[models.Service](ctx, db, id)
}

func CreateService(ctx context.Context, db *gorm.DB, s *models.Service) (*models.Service, error) {
	return create(ctx, db, s)
}

func UpdateService(ctx context.Context, db *gorm.DB, id uint, updates map[string]interface{}) (*models.Service, error) {
	return updateByID[models.Service](ctx, db, id, updates)
}

func DeleteService(ctx context.Context, db *gorm.DB, id uint) error {
	return deleteByID[models.Service](ctx, db, id)
}

func CountServices(ctx context.Context, db *gorm.DB) (int64, error) {
	return count[models.Service](ctx, db)
}

// Contact messages

func ListContactMessages(ctx context.Context, db *gorm.DB) ([]models.ContactMessage, error) {
	messages := []models.ContactMessage{}
	if err := db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func CreateContactMessage(ctx context.Context, db *gorm.DB, m *models.ContactMessage) (*models.ContactMessage, error) {
	return create(ctx, db, m)
}

func MarkContactMessageRead(ctx context.Context, db *gorm.DB, id uint) (*models.ContactMessage, error) {
	return updateByID[models.ContactMessage](ctx, db, id, map[string]interface{}{"is_read": true})
}

func DeleteContactMessage(ctx context.Context, db *gorm.DB, id uint) error {
	return deleteByID[models.ContactMessage](ctx, db, id)
}

func CountUnreadContactMessages(ctx context.Context, db *gorm.DB) (int64, error) {
	return count[models.ContactMessage](ctx, db, func(q *gorm.DB) *gorm.DB {
		return q.Where("is_read = ?", false)
	})
}
