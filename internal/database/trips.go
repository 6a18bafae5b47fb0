package database

import (
	"context"

	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"gorm.io/gorm"
)

type TripQuery struct {
	ActiveOnly bool
}

// ListTrips returns trips ordered by start date.
func ListTrips(ctx context.Context, db *gorm.DB, q TripQuery) ([]models.Trip, error) {
	trips := []models.Trip{}
	query := db.WithContext(ctx).Order("start_date ASC").Order("id ASC")
	if q.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func GetTrip(ctx context.Context, db *gorm.DB, id uint) (*models.Trip, error) {
	return getByID[models.Trip](ctx, db, id)
}

func CreateTrip(ctx context.Context, db *gorm.DB, trip *models.Trip) (*models.Trip, error) {
	return create(ctx, db, trip)
}

func UpdateTrip(ctx context.Context, db *gorm.DB, id uint, updates map[string]interface{}) (*models.Trip, error) {
	return updateByID[models.Trip](ctx, db, id, updates)
}

func DeleteTrip(ctx context.Context, db *gorm.DB, id uint) error {
	return deleteByID[models.Trip](ctx, db, id)
}

func CountTrips(ctx context.Context, db *gorm.DB) (int64, error) {
	return count[models.Trip](ctx, db)
}
