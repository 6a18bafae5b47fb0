package database

import (
	"context"

	"gorm.io/gorm"
)

// Shared single-row operations. Every function performs one remote
// operation (plus a re-read for updates) and returns driver errors as-is.

func getByID[T any](ctx context.Context, db *gorm.DB, id uint, preloads ...string) (*T, error) {
	var row T
	q := db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func create[T any](ctx context.Context, db *gorm.DB, row *T) (*T, error) {
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// updateByID applies a partial update and returns the written row. Keys
// are column names. A missing id yields gorm.ErrRecordNotFound.
func updateByID[T any](ctx context.Context, db *gorm.DB, id uint, updates map[string]interface{}, preloads ...string) (*T, error) {
	var row T
	tx := db.WithContext(ctx)
	if err := tx.First(&row, id).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := tx.Model(&row).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return getByID[T](ctx, db, id, preloads...)
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id uint) error {
	var row T
	result := db.WithContext(ctx).Delete(&row, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func count[T any](ctx context.Context, db *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	var n int64
	var row T
	err := db.WithContext(ctx).Model(&row).Scopes(scopes...).Count(&n).Error
	return n, err
}
