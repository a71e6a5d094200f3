package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"booking-be/internal/entities"
)

// HospitalRepository defines the interface for hospital and service database operations
type HospitalRepository interface {
	List(ctx context.Context) ([]entities.Hospital, error)
	FindByID(ctx context.Context, id uint) (*entities.Hospital, error)
	ListServices(ctx context.Context, hospitalID uint) ([]entities.Service, error)
	FindServiceByID(ctx context.Context, id uint) (*entities.Service, error)
	// CreateWithServices inserts the hospital and all of its services in one transaction.
	CreateWithServices(ctx context.Context, hospital *entities.Hospital, services []entities.Service) (*entities.Hospital, error)
	// ReplaceServices renames the hospital and swaps its whole service list in one transaction.
	ReplaceServices(ctx context.Context, id uint, name string, services []entities.Service) (*entities.Hospital, error)
	Delete(ctx context.Context, id uint) error
}

type hospitalRepository struct {
	db *gorm.DB
}

// NewHospitalRepository creates a new hospital repository
func NewHospitalRepository(db *gorm.DB) HospitalRepository {
	return &hospitalRepository{db: db}
}

func (r *hospitalRepository) List(ctx context.Context) ([]entities.Hospital, error) {
	var hospitals []entities.Hospital
	err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("id ASC").
		Find(&hospitals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, nil
}

func (r *hospitalRepository) FindByID(ctx context.Context, id uint) (*entities.Hospital, error) {
	var hospital entities.Hospital
	if err := r.db.WithContext(ctx).First(&hospital, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &hospital, nil
}

func (r *hospitalRepository) ListServices(ctx context.Context, hospitalID uint) ([]entities.Service, error) {
	services := []entities.Service{}
	err := r.db.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("id ASC").
		Find(&services).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *hospitalRepository) FindServiceByID(ctx context.Context, id uint) (*entities.Service, error) {
	var service entities.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &service, nil
}

func (r *hospitalRepository) CreateWithServices(ctx context.Context, hospital *entities.Hospital, services []entities.Service) (*entities.Hospital, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Services are inserted explicitly below
		if err := tx.Omit("Services").Create(hospital).Error; err != nil {
			return err
		}
		created, err := createServices(tx, hospital.ID, services)
		if err != nil {
			return err
		}
		hospital.Services = created
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create hospital: %w", err)
	}
	return hospital, nil
}

func (r *hospitalRepository) ReplaceServices(ctx context.Context, id uint, name string, services []entities.Service) (*entities.Hospital, error) {
	var hospital entities.Hospital
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&hospital, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Model(&hospital).Update("name", name).Error; err != nil {
			return err
		}
		if err := tx.Where("hospital_id = ?", id).Delete(&entities.Service{}).Error; err != nil {
			return err
		}
		created, err := createServices(tx, id, services)
		if err != nil {
			return err
		}
		hospital.Services = created
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update hospital: %w", err)
	}
	return &hospital, nil
}

func (r *hospitalRepository) Delete(ctx context.Context, id uint) error {
	// services and their bookings go with it through ON DELETE CASCADE
	res := r.db.WithContext(ctx).Delete(&entities.Hospital{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete hospital: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func createServices(tx *gorm.DB, hospitalID uint, services []entities.Service) ([]entities.Service, error) {
	created := make([]entities.Service, len(services))
	for i, s := range services {
		s.ID = 0
		s.HospitalID = hospitalID
		if err := tx.Omit("Hospital").Create(&s).Error; err != nil {
			return nil, err
		}
		created[i] = s
	}
	return created, nil
}
