// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"booking-be/internal/entities"
	"booking-be/internal/repository"
)

// Store backs all three repositories so joins and cascades behave like the database.
type Store struct {
	mu        sync.Mutex
	users     map[uint]entities.User
	hospitals map[uint]entities.Hospital
	services  map[uint]entities.Service
	bookings  map[uint]entities.Booking
	nextID    uint

	// Err, when set, is returned by every operation.
	Err error
}

func NewStore() *Store {
	return &Store{
		users:     map[uint]entities.User{},
		hospitals: map[uint]entities.Hospital{},
		services:  map[uint]entities.Service{},
		bookings:  map[uint]entities.Booking{},
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) Users() repository.UserRepository         { return userRepo{s} }
func (s *Store) Hospitals() repository.HospitalRepository { return hospitalRepo{s} }
func (s *Store) Bookings() repository.BookingRepository   { return bookingRepo{s} }

// UserCount reports how many users exist
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// BookingCount reports how many bookings exist
func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entities.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	if u.Type == "" {
		u.Type = entities.UserTypeUser
	}
	u.ID = r.s.id()
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepo) FindByID(_ context.Context, id uint) (*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) UpdateType(_ context.Context, id uint, userType string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Type = userType
	r.s.users[id] = u
	return nil
}

// DeleteUser removes a user, as if deleted out of band
func (s *Store) DeleteUser(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

type hospitalRepo struct{ s *Store }

func (r hospitalRepo) servicesOf(hospitalID uint) []entities.Service {
	out := []entities.Service{}
	for _, sv := range r.s.services {
		if sv.HospitalID == hospitalID {
			out = append(out, sv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r hospitalRepo) List(_ context.Context) ([]entities.Hospital, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []entities.Hospital{}
	for _, h := range r.s.hospitals {
		h.Services = r.servicesOf(h.ID)
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r hospitalRepo) FindByID(_ context.Context, id uint) (*entities.Hospital, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	h, ok := r.s.hospitals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &h, nil
}

func (r hospitalRepo) ListServices(_ context.Context, hospitalID uint) ([]entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.servicesOf(hospitalID), nil
}

func (r hospitalRepo) FindServiceByID(_ context.Context, id uint) (*entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	sv, ok := r.s.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sv, nil
}

func (r hospitalRepo) CreateWithServices(_ context.Context, h *entities.Hospital, services []entities.Service) (*entities.Hospital, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	h.ID = r.s.id()
	h.CreatedAt, h.UpdatedAt = time.Now(), time.Now()
	h.Services = r.insertServices(h.ID, services)
	stored := *h
	stored.Services = nil
	r.s.hospitals[h.ID] = stored
	return h, nil
}

func (r hospitalRepo) ReplaceServices(_ context.Context, id uint, name string, services []entities.Service) (*entities.Hospital, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	h, ok := r.s.hospitals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	h.Name = name
	h.UpdatedAt = time.Now()
	r.s.hospitals[id] = h
	for sid, sv := range r.s.services {
		if sv.HospitalID == id {
			r.deleteService(sid)
		}
	}
	h.Services = r.insertServices(id, services)
	return &h, nil
}

func (r hospitalRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.hospitals[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.hospitals, id)
	for sid, sv := range r.s.services {
		if sv.HospitalID == id {
			r.deleteService(sid)
		}
	}
	return nil
}

func (r hospitalRepo) insertServices(hospitalID uint, services []entities.Service) []entities.Service {
	out := make([]entities.Service, len(services))
	for i, sv := range services {
		sv.ID = r.s.id()
		sv.HospitalID = hospitalID
		sv.CreatedAt, sv.UpdatedAt = time.Now(), time.Now()
		r.s.services[sv.ID] = sv
		out[i] = sv
	}
	return out
}

// deleteService cascades to bookings
func (r hospitalRepo) deleteService(id uint) {
	delete(r.s.services, id)
	for bid, b := range r.s.bookings {
		if b.ServiceID == id {
			delete(r.s.bookings, bid)
		}
	}
}

// DeleteService removes a service, as if deleted concurrently
func (s *Store) DeleteService(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hospitalRepo{s}.deleteService(id)
}

type bookingRepo struct{ s *Store }

// join attaches the service and, when withHospital is set, its hospital
func (r bookingRepo) join(b entities.Booking, withHospital bool) entities.Booking {
	if sv, ok := r.s.services[b.ServiceID]; ok {
		if withHospital {
			if h, ok := r.s.hospitals[sv.HospitalID]; ok {
				sv.Hospital = &h
			}
		}
		b.Service = &sv
	}
	return b
}

func (r bookingRepo) Create(_ context.Context, b *entities.Booking) (*entities.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if _, ok := r.s.services[b.ServiceID]; !ok {
		return nil, errors.New("violates foreign key constraint")
	}
	b.ID = r.s.id()
	b.CreatedAt, b.UpdatedAt = time.Now(), time.Now()
	r.s.bookings[b.ID] = *b
	joined := r.join(*b, false)
	return &joined, nil
}

func (r bookingRepo) FindByID(_ context.Context, id uint) (*entities.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r bookingRepo) ListByUser(_ context.Context, userID uint) ([]entities.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []entities.Booking{}
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			out = append(out, r.join(b, true))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r bookingRepo) Update(_ context.Context, id uint, c repository.BookingChanges) (*entities.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if c.StartDate != nil {
		b.StartDate = *c.StartDate
	}
	if c.EndDate != nil {
		b.EndDate = *c.EndDate
	}
	if c.Status != nil {
		b.Status = *c.Status
	}
	if c.ServiceID != nil {
		b.ServiceID = *c.ServiceID
	}
	b.UpdatedAt = time.Now()
	r.s.bookings[id] = b
	joined := r.join(b, true)
	return &joined, nil
}

func (r bookingRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.bookings, id)
	return nil
}
