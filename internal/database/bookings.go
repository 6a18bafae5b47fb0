package database

import (
	"context"

	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"gorm.io/gorm"
)

type BookingQuery struct {
	Status models.BookingStatus
}

// ListBookings returns bookings with their trip, newest first. An empty
// status matches every booking.
func ListBookings(ctx context.Context, db *gorm.DB, q BookingQuery) ([]models.Booking, error) {
	bookings := []models.Booking{}
	query := db.WithContext(ctx).
		Preload("Trip").
		Order("created_at DESC").
		Order("id DESC")
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func GetBooking(ctx context.Context, db *gorm.DB, id uint) (*models.Booking, error) {
	return getByID[models.Booking](ctx, db, id, "Trip")
}

func CreateBooking(ctx context.Context, db *gorm.DB, booking *models.Booking) (*models.Booking, error) {
	return create(ctx, db, booking)
}

func UpdateBooking(ctx context.Context, db *gorm.DB, id uint, updates map[string]interface{}) (*models.Booking, error) {
	return updateByID[models.Booking](ctx, db, id, updates, "Trip")
}

func DeleteBooking(ctx context.Context, db *gorm.DB, id uint) error {
	return deleteByID[models.Booking](ctx, db, id)
}

func CountBookings(ctx context.Context, db *gorm.DB) (int64, error) {
	return count[models.Booking](ctx, db)
}

func CountBookingsByStatus(ctx context.Context, db *gorm.DB, status models.BookingStatus) (int64, error) {
	return count[models.Booking](ctx, db, func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", status)
	})
}
