package repository

import (
	"context"
	"errors"

	"eventwave/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errDuplicateInsert aborts the reservation transaction when the unique index fires
var errDuplicateInsert = errors.New("duplicate registration insert")

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// Reserve serializes attempts per event on the event row lock.
// The lock lives in the database, so it also holds across service instances.
func (r *registrationRepository) Reserve(ctx context.Context, userID, eventID uint) (*domain.Registration, ReserveOutcome, error) {
	var (
		result  *domain.Registration
		outcome = ReserveFull
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the event row
		var event domain.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "capacity").
			First(&event, eventID).Error; err != nil {
			return notFound(err, domain.ErrEventNotFound)
		}

		// 2. Same user, same event
		var existing int64
		if err := tx.Model(&domain.Registration{}).
			Where("user_id = ? AND event_id = ?", userID, eventID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			outcome = ReserveDuplicate
			return nil
		}

		// 3. Count confirmed seats
		var taken int64
		if err := tx.Model(&domain.Registration{}).
			Where("event_id = ? AND status = ?", eventID, domain.RegistrationConfirmed).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken >= int64(event.Capacity) {
			outcome = ReserveFull
			return nil
		}

		// 4. Insert below capacity
		reg := &domain.Registration{UserID: userID, EventID: eventID, Status: domain.RegistrationConfirmed}
		if err := tx.Create(reg).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicateInsert
			}
			return err
		}
		result = reg
		outcome = ReserveConfirmed
		return nil
	})

	if errors.Is(err, errDuplicateInsert) {
		return nil, ReserveDuplicate, nil
	}
	if err != nil {
		return nil, ReserveFull, err
	}
	return result, outcome, nil
}

func (r *registrationRepository) FindByID(ctx context.Context, id uint) (*domain.Registration, error) {
	var reg domain.Registration
	if err := r.db.WithContext(ctx).First(&reg, id).Error; err != nil {
		return nil, notFound(err, domain.ErrRegistrationNotFound)
	}
	return &reg, nil
}

func (r *registrationRepository) FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*domain.Registration, error) {
	var reg domain.Registration
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&reg).Error
	if err != nil {
		return nil, notFound(err, domain.ErrRegistrationNotFound)
	}
	return &reg, nil
}

func (r *registrationRepository) DeleteByUserAndEvent(ctx context.Context, userID, eventID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&domain.Registration{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *registrationRepository) ListByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	var regs []domain.Registration
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&regs).Error
	return regs, err
}

func (r *registrationRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Registration, error) {
	var regs []domain.Registration
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&regs).Error
	return regs, err
}

func (r *registrationRepository) CountConfirmed(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Registration{}).
		Where("event_id = ? AND status = ?", eventID, domain.RegistrationConfirmed).
		Count(&count).Error
	return count, err
}
