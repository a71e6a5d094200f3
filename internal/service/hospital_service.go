package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"booking-be/internal/cache"
	"booking-be/internal/entities"
	"booking-be/internal/models"
	"booking-be/internal/repository"
)

// HospitalService defines the interface for the hospital catalog
type HospitalService interface {
	ListHospitals(ctx context.Context) ([]entities.Hospital, error)
	ListServices(ctx context.Context, hospitalID uint) ([]entities.Service, error)
	CreateHospital(ctx context.Context, userID uint, req *models.HospitalRequest) (*entities.Hospital, error)
	UpdateHospital(ctx context.Context, userID, id uint, req *models.HospitalRequest) (*entities.Hospital, error)
	DeleteHospital(ctx context.Context, userID, id uint) error
}

// catalogReinvalidateDelay is how long after a write the catalog keys are
// deleted a second time. A read that loaded rows before the commit and cached
// them after the first delete is evicted by the second.
const catalogReinvalidateDelay = time.Second

type hospitalService struct {
	repo              repository.HospitalRepository
	cache             cache.Cache
	cacheTTL          time.Duration
	reinvalidateAfter time.Duration
}

// NewHospitalService creates a new hospital service. cacheClient may be nil.
func NewHospitalService(repo repository.HospitalRepository, cacheClient cache.Cache, cacheTTL time.Duration) HospitalService {
	return &hospitalService{
		repo:              repo,
		cache:             cacheClient,
		cacheTTL:          cacheTTL,
		reinvalidateAfter: catalogReinvalidateDelay,
	}
}

func (s *hospitalService) ListHospitals(ctx context.Context) ([]entities.Hospital, error) {
	var hospitals []entities.Hospital
	if s.fromCache(ctx, cache.HospitalsKey, &hospitals) {
		return hospitals, nil
	}

	hospitals, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range hospitals {
		if hospitals[i].Services == nil {
			hospitals[i].Services = []entities.Service{}
		}
	}

	s.toCache(ctx, cache.HospitalsKey, hospitals)
	return hospitals, nil
}

// ListServices returns an empty list, not an error, for an unknown hospital
func (s *hospitalService) ListServices(ctx context.Context, hospitalID uint) ([]entities.Service, error) {
	key := cache.HospitalServicesKey(hospitalID)
	var services []entities.Service
	if s.fromCache(ctx, key, &services) {
		return services, nil
	}

	services, err := s.repo.ListServices(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []entities.Service{}
	}

	s.toCache(ctx, key, services)
	return services, nil
}

func (s *hospitalService) CreateHospital(ctx context.Context, userID uint, req *models.HospitalRequest) (*entities.Hospital, error) {
	services, err := validateHospital(req)
	if err != nil {
		return nil, err
	}

	hospital, err := s.repo.CreateWithServices(ctx, &entities.Hospital{
		Name:   req.Name,
		UserID: userID,
	}, services)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, hospital.ID)
	return hospital, nil
}

func (s *hospitalService) UpdateHospital(ctx context.Context, userID, id uint, req *models.HospitalRequest) (*entities.Hospital, error) {
	services, err := validateHospital(req)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwner(ctx, userID, id); err != nil {
		return nil, err
	}

	hospital, err := s.repo.ReplaceServices(ctx, id, req.Name, services)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrHospitalNotFound
	}
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return hospital, nil
}

func (s *hospitalService) DeleteHospital(ctx context.Context, userID, id uint) error {
	if err := s.checkOwner(ctx, userID, id); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrHospitalNotFound
	}
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

// checkOwner answers not-found before forbidden
func (s *hospitalService) checkOwner(ctx context.Context, userID, id uint) error {
	hospital, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrHospitalNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load hospital: %w", err)
	}
	if hospital.UserID != userID {
		return ErrForbidden
	}
	return nil
}

func validateHospital(req *models.HospitalRequest) ([]entities.Service, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, invalid("Hospital name is required")
	}

	raw, ok := req.Services.([]interface{})
	if !ok {
		return nil, invalid("Services must be an array")
	}

	var inputs []models.ServiceInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &inputs,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, invalid("Invalid services payload")
	}

	services := make([]entities.Service, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in.Name) == "" {
			return nil, invalid("Service name is required")
		}
		if in.Price < 0 {
			return nil, invalid("Service price cannot be negative")
		}
		services[i] = entities.Service{
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
		}
	}
	return services, nil
}

func (s *hospitalService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.GetJSON(ctx, key, dest)
	if err != nil && !errors.Is(err, cache.ErrMiss) {
		zap.L().Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}
	return err == nil
}

func (s *hospitalService) toCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, s.cacheTTL); err != nil {
		zap.L().Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *hospitalService) invalidate(ctx context.Context, hospitalID uint) {
	if s.cache == nil {
		return
	}
	s.evict(ctx, hospitalID)

	if s.reinvalidateAfter <= 0 {
		return
	}
	time.AfterFunc(s.reinvalidateAfter, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.evict(ctx, hospitalID)
	})
}

func (s *hospitalService) evict(ctx context.Context, hospitalID uint) {
	if err := s.cache.Delete(ctx, cache.HospitalsKey, cache.HospitalServicesKey(hospitalID)); err != nil {
		zap.L().Warn("catalog cache invalidation failed", zap.Uint("hospital_id", hospitalID), zap.Error(err))
	}
}
