package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"booking-be/internal/entities"
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	UpdateType(ctx context.Context, id uint, userType string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user and fills in its generated fields.
// A taken email yields ErrDuplicate.
func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	if user.Type == "" {
		user.Type = entities.UserTypeUser
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if err = duplicate(err); errors.Is(err, ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail finds a user by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// FindByID finds a user by ID
func (r *userRepository) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) UpdateType(ctx context.Context, id uint, userType string) error {
	res := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Update("type", userType)
	if res.Error != nil {
		return fmt.Errorf("failed to update user type: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
