package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"parkspot/internal/cache"
	apperrors "parkspot/internal/errors"
	"parkspot/internal/model"
	"parkspot/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes read operations of the user directory.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetUserSpots(ctx context.Context, id uint) (*model.User, []model.Spot, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

// GetUser returns a user, served from cache when possible. Users never change
// after registration so the entry is never invalidated.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, cache.UserKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}

	s.cache.SetJSON(ctx, cache.UserKey(id), user, userCacheTTL)
	return user, nil
}

// GetUserSpots returns the user together with the spots it currently holds.
// Ownership changes with every reservation, so this always reads the store.
func (s *userService) GetUserSpots(ctx context.Context, id uint) (*model.User, []model.Spot, error) {
	user, err := s.repo.FindByIDWithSpots(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("find user %d with spots: %w", id, err)
	}
	spots := user.Spots
	user.Spots = nil
	return user, spots, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}
