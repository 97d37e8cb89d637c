package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "parkspot/internal/errors"
	"parkspot/internal/model"
	"parkspot/internal/repository"
)

const bcryptCost = 10

// Registration carries the fields a driver supplies when signing up.
type Registration struct {
	Name         string
	Email        string
	Password     string
	VehiclePlate string
}

// AuthService handles registration and credential checks.
type AuthService interface {
	Register(ctx context.Context, reg Registration) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Register creates a new user with hashed password.
func (s *authService) Register(ctx context.Context, reg Registration) (*model.User, error) {
	if reg.Email == model.SentinelEmail {
		return nil, apperrors.ErrUserAlreadyExists
	}

	existing, err := s.userRepo.FindByEmail(ctx, reg.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	user, err := newUser(reg)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race against a concurrent registration of the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Authenticate returns the user whose password matches.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

func newUser(reg Registration) (*model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &model.User{
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: string(hashedPassword),
		VehiclePlate: reg.VehiclePlate,
	}, nil
}
