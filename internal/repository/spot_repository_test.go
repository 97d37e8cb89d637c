package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"parkspot/internal/db"
	"parkspot/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB, false))
	return gormDB
}

func createUser(t *testing.T, repo UserRepository, email string) *model.User {
	t.Helper()
	user := &model.User{Name: "Driver", Email: email, PasswordHash: "hash", VehiclePlate: "ABC1234"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func createSpot(t *testing.T, repo SpotRepository, spot *model.Spot) *model.Spot {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), spot))
	return spot
}

func TestSpotRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	spots := NewSpotRepository(gormDB)
	now := time.Now().UTC().Truncate(time.Second)

	owner := createUser(t, users, "owner@b.com")
	empty := createSpot(t, spots, model.NewEmptySpot(now))
	owned := createSpot(t, spots, model.NewOwnedSpot(owner, now))

	got, err := spots.FindByID(ctx, empty.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UserID)
	assert.Nil(t, got.User)

	got, err = spots.FindByID(ctx, owned.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, "owner@b.com", got.User.Email)
	assert.Equal(t, 1, got.HoursReserved)

	all, err := spots.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = spots.FindByID(ctx, 999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSpotRepository_ReserveIfFree(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	spots := NewSpotRepository(gormDB)
	now := time.Now().UTC().Truncate(time.Second)
	driver := createUser(t, users, "a@b.com")

	free := createSpot(t, spots, model.NewEmptySpot(now.Add(-2*time.Hour)))
	held := createSpot(t, spots, &model.Spot{ReservedAt: now, ReservedDueTo: now.Add(time.Hour), IsReserved: true})
	occupied := createSpot(t, spots, &model.Spot{ReservedAt: now.Add(-time.Hour), ReservedDueTo: now.Add(-time.Hour), IsOccupied: true})

	ok, err := spots.ReserveIfFree(ctx, free.ID, driver.ID, 3, now)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := spots.FindByID(ctx, free.ID)
	require.NoError(t, err)
	assert.True(t, got.IsReserved)
	assert.True(t, got.OwnedBy(driver.ID))
	assert.Equal(t, 3, got.HoursReserved)
	assert.True(t, got.ReservedAt.Equal(now))
	assert.True(t, got.ReservedDueTo.Equal(now.Add(3*time.Hour)))

	// the window just opened, a second attempt must lose
	ok, err = spots.ReserveIfFree(ctx, free.ID, driver.ID, 1, now)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = spots.ReserveIfFree(ctx, held.ID, driver.ID, 1, now)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = spots.ReserveIfFree(ctx, occupied.ID, driver.ID, 1, now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSpotRepository_CheckInAndOccupancy(t *testing.T) {
	ctx := context.Background()
	spots := NewSpotRepository(newTestDB(t))
	now := time.Now().UTC().Truncate(time.Second)

	unreserved := createSpot(t, spots, model.NewEmptySpot(now))
	reserved := createSpot(t, spots, &model.Spot{ReservedAt: now, ReservedDueTo: now.Add(time.Hour), IsReserved: true, HoursReserved: 1})

	ok, err := spots.CheckIn(ctx, unreserved.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = spots.CheckIn(ctx, reserved.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := spots.FindByID(ctx, reserved.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCheckedIn)

	ok, err = spots.SetOccupancy(ctx, unreserved.ID, true)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err = spots.FindByID(ctx, unreserved.ID)
	require.NoError(t, err)
	assert.True(t, got.IsOccupied)

	ok, err = spots.SetOccupancy(ctx, 404, true)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSpotRepository_FindAndReleaseExpired(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	spots := NewSpotRepository(gormDB)
	now := time.Now().UTC().Truncate(time.Second)
	driver := createUser(t, users, "a@b.com")

	expired := model.NewEmptySpot(now.Add(-2 * time.Hour))
	expired.Reserve(driver.ID, 1, now.Add(-2*time.Hour))
	expired.IsCheckedIn = true
	createSpot(t, spots, expired)

	active := model.NewEmptySpot(now)
	active.Reserve(driver.ID, 2, now.Add(-time.Hour))
	createSpot(t, spots, active)

	// due exactly now is not expired
	boundary := createSpot(t, spots, model.NewEmptySpot(now))

	found, err := spots.FindExpired(ctx, now)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, expired.ID, found[0].ID)

	released, err := spots.ReleaseExpired(ctx, []uint{expired.ID, active.ID, boundary.ID}, now, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), released)

	got, err := spots.FindByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UserID)
	assert.False(t, got.IsReserved)
	assert.Zero(t, got.HoursReserved)
	assert.True(t, got.ReservedAt.Equal(now))
	assert.True(t, got.ReservedDueTo.Equal(now))
	assert.True(t, got.IsCheckedIn)

	got, err = spots.FindByID(ctx, active.ID)
	require.NoError(t, err)
	assert.True(t, got.OwnedBy(driver.ID))
	assert.Equal(t, 2, got.HoursReserved)

	released, err = spots.ReleaseExpired(ctx, nil, now, false)
	require.NoError(t, err)
	assert.Zero(t, released)
}

func TestSpotRepository_ReleaseExpired_ResetCheckIn(t *testing.T) {
	ctx := context.Background()
	spots := NewSpotRepository(newTestDB(t))
	now := time.Now().UTC().Truncate(time.Second)

	spot := &model.Spot{
		IsReserved:    true,
		IsCheckedIn:   true,
		ReservedAt:    now.Add(-2 * time.Hour),
		ReservedDueTo: now.Add(-time.Hour),
		HoursReserved: 1,
	}
	createSpot(t, spots, spot)

	released, err := spots.ReleaseExpired(ctx, []uint{spot.ID}, now, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), released)

	got, err := spots.FindByID(ctx, spot.ID)
	require.NoError(t, err)
	assert.False(t, got.IsCheckedIn)
}
