package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"booking-be/internal/entities"
	"booking-be/internal/models"
	"booking-be/internal/repository"
)

// BookingService defines the interface for booking business logic
type BookingService interface {
	CreateBooking(ctx context.Context, userID uint, req *models.CreateBookingRequest) (*entities.Booking, error)
	ListUserBookings(ctx context.Context, userID uint) ([]entities.Booking, error)
	UpdateBooking(ctx context.Context, userID, id uint, req *models.UpdateBookingRequest) (*entities.Booking, error)
	// UpdateBookingStatus sets any known status regardless of the current one
	UpdateBookingStatus(ctx context.Context, userID, id uint, req *models.UpdateBookingStatusRequest) (*entities.Booking, error)
	DeleteBooking(ctx context.Context, userID, id uint) error
	GetOwnedBooking(ctx context.Context, userID, id uint) (*entities.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	hospitals repository.HospitalRepository
}

// NewBookingService creates a new booking service
func NewBookingService(repo repository.BookingRepository, hospitals repository.HospitalRepository) BookingService {
	return &bookingService{
		repo:      repo,
		hospitals: hospitals,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uint, req *models.CreateBookingRequest) (*entities.Booking, error) {
	if req.ServiceID == 0 || strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		return nil, invalid("Service ID, start date, and end date are required")
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	// The service may still vanish before the insert; the foreign key
	// then fails the insert and the caller sees a 500.
	if err := s.checkService(ctx, req.ServiceID); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &entities.Booking{
		UserID:    userID,
		ServiceID: req.ServiceID,
		StartDate: start,
		EndDate:   end,
		Status:    entities.BookingStatusPending,
	})
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID uint) ([]entities.Booking, error) {
	bookings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []entities.Booking{}
	}
	return bookings, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, userID, id uint, req *models.UpdateBookingRequest) (*entities.Booking, error) {
	if strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		return nil, invalid("Start date, and end date are required")
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	changes := repository.BookingChanges{StartDate: &start, EndDate: &end}
	if req.Status != nil && *req.Status != "" {
		status, err := parseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		changes.Status = &status
	}

	if _, err := s.GetOwnedBooking(ctx, userID, id); err != nil {
		return nil, err
	}

	if req.ServiceID != nil && *req.ServiceID != 0 {
		if err := s.checkService(ctx, *req.ServiceID); err != nil {
			return nil, err
		}
		changes.ServiceID = req.ServiceID
	}

	return s.update(ctx, id, changes)
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, userID, id uint, req *models.UpdateBookingStatusRequest) (*entities.Booking, error) {
	if strings.TrimSpace(req.Status) == "" {
		return nil, invalid("Status is required")
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	if _, err := s.GetOwnedBooking(ctx, userID, id); err != nil {
		return nil, err
	}

	return s.update(ctx, id, repository.BookingChanges{Status: &status})
}

func (s *bookingService) DeleteBooking(ctx context.Context, userID, id uint) error {
	if _, err := s.GetOwnedBooking(ctx, userID, id); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBookingNotFound
	}
	return err
}

// GetOwnedBooking answers not-found before forbidden
func (s *bookingService) GetOwnedBooking(ctx context.Context, userID, id uint) (*entities.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if !booking.IsOwnedBy(userID) {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *bookingService) update(ctx context.Context, id uint, changes repository.BookingChanges) (*entities.Booking, error) {
	booking, err := s.repo.Update(ctx, id, changes)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	return booking, err
}

func (s *bookingService) checkService(ctx context.Context, serviceID uint) error {
	_, err := s.hospitals.FindServiceByID(ctx, serviceID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrServiceNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load service: %w", err)
	}
	return nil
}

// parseRange accepts anything dateparse understands; zone-less input is UTC.
func parseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := dateparse.ParseIn(strings.TrimSpace(startRaw), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("Invalid date format")
	}
	end, err := dateparse.ParseIn(strings.TrimSpace(endRaw), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("Invalid date format")
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, invalid("Start date cannot be greater than end date")
	}
	return start.UTC(), end.UTC(), nil
}

func parseStatus(raw string) (entities.BookingStatus, error) {
	status := entities.BookingStatus(raw)
	if !status.Valid() {
		return "", invalid("Invalid status")
	}
	return status, nil
}
