package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"booking-be/internal/entities"
	"booking-be/internal/jwt"
	"booking-be/internal/models"
	"booking-be/internal/repository"
)

// AuthResult is a user together with a freshly issued session token
type AuthResult struct {
	User  *entities.User
	Token string
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req *models.LoginRequest) (*AuthResult, error)
	GetUser(ctx context.Context, id uint) (*entities.User, error)
	// IsAdmin reads the role from storage on every call; tokens carry no role.
	IsAdmin(ctx context.Context, id uint) (bool, error)
	// EnsureAdmin creates the admin account or promotes an existing one.
	// created reports whether a new row was inserted.
	EnsureAdmin(ctx context.Context, name, email, password string) (user *entities.User, created bool, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user account and signs it in
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*AuthResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Password == "" {
		return nil, invalid("Name, email and password are required")
	}

	// Check if user already exists
	_, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Type:     entities.UserTypeUser,
	}
	// a concurrent registration can win between the lookup and the insert
	err = s.userRepo.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user)
}

// Login authenticates a user. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return nil, invalid("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *authService) GetUser(ctx context.Context, id uint) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *authService) IsAdmin(ctx context.Context, id uint) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load user role: %w", err)
	}
	return user.IsAdmin(), nil
}

func (s *authService) EnsureAdmin(ctx context.Context, name, email, password string) (*entities.User, bool, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if user.IsAdmin() {
			return user, false, nil
		}
		if err := s.userRepo.UpdateType(ctx, user.ID, entities.UserTypeAdmin); err != nil {
			return nil, false, err
		}
		user.Type = entities.UserTypeAdmin
		return user, false, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, false, fmt.Errorf("failed to look up admin: %w", err)
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}
	user = &entities.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Type:     entities.UserTypeAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("failed to create admin: %w", err)
	}
	return user, true, nil
}

func (s *authService) issue(user *entities.User) (*AuthResult, error) {
	token, err := s.jwtService.GenerateToken(user.ID, user.Name, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
