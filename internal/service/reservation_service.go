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

const (
	spotCacheTTL = 30 * time.Second
	// DefaultEvictDelay is how long after a write the spot entry is evicted a
	// second time, dropping a stale copy stored by a read that overlapped the write.
	DefaultEvictDelay = 500 * time.Millisecond
)

// ReservationService validates and applies spot lifecycle operations.
type ReservationService interface {
	Reserve(ctx context.Context, spotID uint, email string, hours int) (*model.Spot, error)
	CheckIn(ctx context.Context, spotID uint, email string) (*model.Spot, error)
	SetOccupancy(ctx context.Context, spotID uint, occupied bool) (*model.Spot, error)
	CreateEmptySpot(ctx context.Context) (*model.Spot, error)
	CreateSpotWithOwner(ctx context.Context, owner Registration) (*model.Spot, error)
	GetSpot(ctx context.Context, id uint) (*model.Spot, error)
	ListSpots(ctx context.Context) ([]model.Spot, error)
}

// ReservationOptions tunes the reservation rules.
type ReservationOptions struct {
	// StrictCheckIn rejects check-ins from anyone but the spot owner. The
	// historical behaviour accepts any registered user.
	StrictCheckIn bool
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
	// EvictDelay defaults to DefaultEvictDelay.
	EvictDelay time.Duration
}

type reservationService struct {
	spotRepo repository.SpotRepository
	userRepo repository.UserRepository
	cache    *cache.Client
	strict   bool
	now      func() time.Time

	evictDelay time.Duration
	afterFunc  func(time.Duration, func())
}

// NewReservationService creates a new reservation service.
func NewReservationService(
	spotRepo repository.SpotRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
	opts ReservationOptions,
) ReservationService {
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	evictDelay := opts.EvictDelay
	if evictDelay <= 0 {
		evictDelay = DefaultEvictDelay
	}
	return &reservationService{
		spotRepo:   spotRepo,
		userRepo:   userRepo,
		cache:      cache,
		strict:     opts.StrictCheckIn,
		now:        now,
		evictDelay: evictDelay,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// Reserve hands a free spot to the user identified by email for hours.
func (s *reservationService) Reserve(ctx context.Context, spotID uint, email string, hours int) (*model.Spot, error) {
	if !model.ValidHours(hours) {
		return nil, apperrors.ErrInvalidHours
	}

	spot, user, err := s.loadSpotAndUser(ctx, spotID, email)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if spot.IsBusy(now) {
		return nil, apperrors.ErrSpotBusy
	}

	ok, err := s.spotRepo.ReserveIfFree(ctx, spot.ID, user.ID, hours, now)
	if err != nil {
		return nil, fmt.Errorf("reserve spot %d: %w", spot.ID, err)
	}
	if !ok {
		// another request or the sweep changed the spot after we read it
		return nil, apperrors.ErrSpotBusy
	}
	s.invalidate(ctx, spot.ID)

	spot.Reserve(user.ID, hours, now)
	spot.User = user
	return spot, nil
}

// CheckIn marks a reserved spot as checked in. The requester must exist; it is
// matched against the owner only in strict mode.
func (s *reservationService) CheckIn(ctx context.Context, spotID uint, email string) (*model.Spot, error) {
	spot, user, err := s.loadSpotAndUser(ctx, spotID, email)
	if err != nil {
		return nil, err
	}

	if !spot.IsReserved {
		return nil, apperrors.ErrSpotNotReserved
	}
	if s.strict && !spot.OwnedBy(user.ID) {
		return nil, apperrors.ErrNotSpotOwner
	}

	ok, err := s.spotRepo.CheckIn(ctx, spot.ID)
	if err != nil {
		return nil, fmt.Errorf("check in spot %d: %w", spot.ID, err)
	}
	if !ok {
		return nil, apperrors.ErrSpotNotReserved
	}
	s.invalidate(ctx, spot.ID)

	spot.IsCheckedIn = true
	return spot, nil
}

// SetOccupancy records whether a vehicle is physically parked on the spot.
func (s *reservationService) SetOccupancy(ctx context.Context, spotID uint, occupied bool) (*model.Spot, error) {
	spot, err := s.findSpot(ctx, spotID)
	if err != nil {
		return nil, err
	}

	ok, err := s.spotRepo.SetOccupancy(ctx, spot.ID, occupied)
	if err != nil {
		return nil, fmt.Errorf("set occupancy of spot %d: %w", spot.ID, err)
	}
	if !ok {
		return nil, apperrors.ErrSpotNotFound
	}
	s.invalidate(ctx, spot.ID)

	spot.IsOccupied = occupied
	return spot, nil
}

// CreateEmptySpot adds an unowned spot to the lot.
func (s *reservationService) CreateEmptySpot(ctx context.Context) (*model.Spot, error) {
	spot := model.NewEmptySpot(s.now())
	if err := s.spotRepo.Create(ctx, spot); err != nil {
		return nil, fmt.Errorf("create spot: %w", err)
	}
	return spot, nil
}

// CreateSpotWithOwner adds a spot attached to the user with owner's email,
// registering that user first when unknown.
func (s *reservationService) CreateSpotWithOwner(ctx context.Context, owner Registration) (*model.Spot, error) {
	user, err := s.userRepo.FindByEmail(ctx, owner.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find owner: %w", err)
		}
		if owner.Email == model.SentinelEmail {
			return nil, apperrors.ErrUserAlreadyExists
		}
		user, err = newUser(owner)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create owner: %w", err)
		}
	}

	spot := model.NewOwnedSpot(user, s.now())
	if err := s.spotRepo.Create(ctx, spot); err != nil {
		return nil, fmt.Errorf("create spot: %w", err)
	}
	return spot, nil
}

// GetSpot returns a spot, served from cache when possible.
func (s *reservationService) GetSpot(ctx context.Context, id uint) (*model.Spot, error) {
	var cached model.Spot
	if s.cache.GetJSON(ctx, cache.SpotKey(id), &cached) {
		return &cached, nil
	}

	spot, err := s.findSpot(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, cache.SpotKey(id), spot, spotCacheTTL)
	return spot, nil
}

func (s *reservationService) ListSpots(ctx context.Context) ([]model.Spot, error) {
	return s.spotRepo.List(ctx)
}

func (s *reservationService) loadSpotAndUser(ctx context.Context, spotID uint, email string) (*model.Spot, *model.User, error) {
	spot, err := s.findSpot(ctx, spotID)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	return spot, user, nil
}

func (s *reservationService) findSpot(ctx context.Context, id uint) (*model.Spot, error) {
	spot, err := s.spotRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSpotNotFound
		}
		return nil, fmt.Errorf("find spot %d: %w", id, err)
	}
	return spot, nil
}

// invalidate evicts the spot now and once more after evictDelay. A GetSpot
// miss that read the row before the write may store its copy after the first
// eviction; the second one drops it.
func (s *reservationService) invalidate(ctx context.Context, id uint) {
	key := cache.SpotKey(id)
	_ = s.cache.Delete(ctx, key)
	s.afterFunc(s.evictDelay, func() {
		_ = s.cache.Delete(context.Background(), key)
	})
}
