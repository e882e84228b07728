package repository

import (
	"context"
	"errors"

	"eventwave/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

// Add relies on the (user_id, event_id) unique index; a clash means the entry is already there
func (r *wishlistRepository) Add(ctx context.Context, entry *domain.WishlistEntry) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, eventID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&domain.WishlistEntry{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *wishlistRepository) Exists(ctx context.Context, userID, eventID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.WishlistEntry{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	return count > 0, err
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID uint) ([]domain.WishlistEntry, error) {
	var entries []domain.WishlistEntry
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}
