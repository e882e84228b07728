package repository

import (
	"context"
	"errors"

	"eventwave/internal/domain"

	"gorm.io/gorm"
)

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	err := r.db.WithContext(ctx).Create(review).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.NewValidationError("You've already reviewed this event")
	}
	return err
}

func (r *reviewRepository) Exists(ctx context.Context, userID, eventID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) ListByEvent(ctx context.Context, eventID uint) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at ASC, id ASC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}
