package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"parkspot/internal/model"
)

// SpotRepository defines spot persistence operations. Every mutation is a
// single conditional UPDATE so that concurrent requests and the expiry sweep
// cannot overwrite each other's decision.
type SpotRepository interface {
	Create(ctx context.Context, spot *model.Spot) error
	FindByID(ctx context.Context, id uint) (*model.Spot, error)
	List(ctx context.Context) ([]model.Spot, error)
	// ReserveIfFree assigns the spot unless its window is still open at now or it
	// is occupied. It reports whether the row was updated.
	ReserveIfFree(ctx context.Context, id, userID uint, hours int, now time.Time) (bool, error)
	// CheckIn flags a reserved spot as checked in and reports whether it was reserved.
	CheckIn(ctx context.Context, id uint) (bool, error)
	SetOccupancy(ctx context.Context, id uint, occupied bool) (bool, error)
	FindExpired(ctx context.Context, before time.Time) ([]model.Spot, error)
	// ReleaseExpired resets the listed spots that are still expired at now and
	// returns how many rows changed.
	ReleaseExpired(ctx context.Context, ids []uint, now time.Time, resetCheckIn bool) (int64, error)
}

type spotRepository struct {
	db *gorm.DB
}

// NewSpotRepository creates a new spot repository.
func NewSpotRepository(db *gorm.DB) SpotRepository {
	return &spotRepository{db: db}
}

// Create creates a new spot.
func (r *spotRepository) Create(ctx context.Context, spot *model.Spot) error {
	return r.db.WithContext(ctx).Omit("User").Create(spot).Error
}

// FindByID finds a spot by ID with its owner loaded.
func (r *spotRepository) FindByID(ctx context.Context, id uint) (*model.Spot, error) {
	var spot model.Spot
	if err := r.db.WithContext(ctx).Preload("User").First(&spot, id).Error; err != nil {
		return nil, err
	}
	return &spot, nil
}

// List lists all spots ordered by ID.
func (r *spotRepository) List(ctx context.Context) ([]model.Spot, error) {
	var spots []model.Spot
	if err := r.db.WithContext(ctx).Preload("User").Order("id").Find(&spots).Error; err != nil {
		return nil, err
	}
	return spots, nil
}

func (r *spotRepository) ReserveIfFree(ctx context.Context, id, userID uint, hours int, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Spot{}).
		Where("id = ? AND reserved_due_to <= ? AND is_occupied = ?", id, now, false).
		Updates(map[string]interface{}{
			"user_id":         userID,
			"is_reserved":     true,
			"hours_reserved":  hours,
			"reserved_at":     now,
			"reserved_due_to": now.Add(time.Duration(hours) * time.Hour),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *spotRepository) CheckIn(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Spot{}).
		Where("id = ? AND is_reserved = ?", id, true).
		Update("is_checked_in", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *spotRepository) SetOccupancy(ctx context.Context, id uint, occupied bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Spot{}).
		Where("id = ?", id).
		Update("is_occupied", occupied)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// FindExpired lists spots whose window ended strictly before the given instant.
func (r *spotRepository) FindExpired(ctx context.Context, before time.Time) ([]model.Spot, error) {
	var spots []model.Spot
	if err := r.db.WithContext(ctx).Where("reserved_due_to < ?", before).Order("id").Find(&spots).Error; err != nil {
		return nil, err
	}
	return spots, nil
}

func (r *spotRepository) ReleaseExpired(ctx context.Context, ids []uint, now time.Time, resetCheckIn bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	fields := map[string]interface{}{
		"user_id":         nil,
		"is_reserved":     false,
		"hours_reserved":  0,
		"reserved_at":     now,
		"reserved_due_to": now,
	}
	if resetCheckIn {
		fields["is_checked_in"] = false
	}
	res := r.db.WithContext(ctx).Model(&model.Spot{}).
		Where("id IN ? AND reserved_due_to < ?", ids, now).
		Updates(fields)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
