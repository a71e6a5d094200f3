package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"booking-be/internal/entities"
)

// BookingChanges lists the fields of a partial update; nil fields are left untouched.
type BookingChanges struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *entities.BookingStatus
	ServiceID *uint
}

// BookingRepository defines the interface for booking database operations
type BookingRepository interface {
	// Create inserts the booking and returns it joined with its service
	Create(ctx context.Context, booking *entities.Booking) (*entities.Booking, error)
	FindByID(ctx context.Context, id uint) (*entities.Booking, error)
	// ListByUser returns the user's bookings with service and hospital, newest start first
	ListByUser(ctx context.Context, userID uint) ([]entities.Booking, error)
	// Update applies changes and returns the booking joined with service and hospital
	Update(ctx context.Context, id uint, changes BookingChanges) (*entities.Booking, error)
	Delete(ctx context.Context, id uint) error
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entities.Booking) (*entities.Booking, error) {
	db := r.db.WithContext(ctx)
	if err := db.Omit("Service").Create(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	var created entities.Booking
	if err := db.Preload("Service").First(&created, booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return &created, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*entities.Booking, error) {
	var booking entities.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &booking, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uint) ([]entities.Booking, error) {
	bookings := []entities.Booking{}
	err := r.db.WithContext(ctx).
		Preload("Service.Hospital").
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, id uint, changes BookingChanges) (*entities.Booking, error) {
	updates := map[string]interface{}{}
	if changes.StartDate != nil {
		updates["start_date"] = *changes.StartDate
	}
	if changes.EndDate != nil {
		updates["end_date"] = *changes.EndDate
	}
	if changes.Status != nil {
		updates["status"] = *changes.Status
	}
	if changes.ServiceID != nil {
		updates["service_id"] = *changes.ServiceID
	}

	db := r.db.WithContext(ctx)
	if len(updates) > 0 {
		res := db.Model(&entities.Booking{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("failed to update booking: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	var booking entities.Booking
	if err := db.Preload("Service.Hospital").First(&booking, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &booking, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Booking{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
