package repository

import (
	"context"
	"errors"

	"eventwave/internal/domain"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.NewConflictError("username or email already exists")
	}
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

// Update writes username and email only; role and password are not changed here.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Model(user).Select("username", "email", "updated_at").Updates(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.NewConflictError("username or email already exists")
	}
	return err
}

// notFound swaps gorm's record-not-found for a domain error
func notFound(err, replacement error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return replacement
	}
	return err
}
